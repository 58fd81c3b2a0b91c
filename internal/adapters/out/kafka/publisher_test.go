package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"parceltrack/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type writerMock struct {
	mock.Mock
}

func (m *writerMock) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type PublisherSuite struct {
	suite.Suite
	wm *writerMock
	p  *Publisher
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.wm = &writerMock{}
	s.p = newPublisherWithWriter(s.wm)
}

func (s *PublisherSuite) TestNewPublisher_NotNil() {
	p := NewPublisher([]string{"localhost:0"})
	s.Require().NotNil(p)
	s.Require().NoError(p.Close())
}

func (s *PublisherSuite) TestPublish_WritesBatchKeyedByTrackingCode() {
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	batch := []ports.OutboxMessage{
		{ID: 1, Topic: "parcel.tracking-events", Key: "AB12CD34", Payload: []byte(`{"a":1}`), CreatedAt: at},
		{ID: 2, Topic: "parcel.tracking-events", Key: "FFFF0000", Payload: []byte(`{"a":2}`), CreatedAt: at},
	}

	s.wm.
		On("WriteMessages", mock.Anything, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 2 {
				return false
			}
			return msgs[0].Topic == "parcel.tracking-events" &&
				string(msgs[0].Key) == "AB12CD34" &&
				string(msgs[1].Value) == `{"a":2}` &&
				msgs[0].Time.Equal(at)
		})).
		Return(nil).
		Once()

	s.Require().NoError(s.p.Publish(context.Background(), batch))
	s.wm.AssertExpectations(s.T())
}

func (s *PublisherSuite) TestPublish_EmptyBatchIsNoop() {
	s.Require().NoError(s.p.Publish(context.Background(), nil))
	s.wm.AssertNotCalled(s.T(), "WriteMessages", mock.Anything, mock.Anything)
}

func (s *PublisherSuite) TestPublish_ErrorWrapped() {
	s.wm.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("boom")).Once()

	err := s.p.Publish(context.Background(), []ports.OutboxMessage{{Topic: "t", Key: "k"}})
	s.Require().Error(err)
	s.Contains(err.Error(), "kafka publish")
	s.wm.AssertExpectations(s.T())
}
