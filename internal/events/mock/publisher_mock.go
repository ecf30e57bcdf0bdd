package mock

import (
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/mock"

	"github.com/Ovitozinn/luxe-dash-suite/internal/events"
)

// MsgPublisherMock mocks events.MsgPublisher
type MsgPublisherMock struct {
	mock.Mock
}

// Ensure MsgPublisherMock implements events.MsgPublisher
var _ events.MsgPublisher = (*MsgPublisherMock)(nil)

// PublishMsg mocks the PublishMsg method
func (m *MsgPublisherMock) PublishMsg(msg *nats.Msg) error {
	args := m.Called(msg)
	return args.Error(0)
}

// Close mocks the Close method
func (m *MsgPublisherMock) Close() {
	m.Called()
}
