package consumer

import (
	"errors"
	"testing"

	"shop-service/internal/sender"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSender struct {
	got []sender.EmailNotification
	err error
}

func (s *recordingSender) SendEmail(n sender.EmailNotification) error {
	s.got = append(s.got, n)
	return s.err
}

func TestKafkaEmailConsumer_Handle(t *testing.T) {
	rs := &recordingSender{}
	c := &KafkaEmailConsumer{emailSender: rs, log: zap.NewNop()}

	ok := c.handle(kafka.Message{Value: []byte(`{"to":"u@example.com","subject":"S","template":"password_reset","data":{"Code":"1234"}}`)})
	assert.True(t, ok)
	require.Len(t, rs.got, 1)
	assert.Equal(t, "u@example.com", rs.got[0].To)
	assert.Equal(t, "password_reset", rs.got[0].Template)
	assert.Equal(t, "1234", rs.got[0].Data["Code"])
}

func TestKafkaEmailConsumer_SkipsBadMessages(t *testing.T) {
	rs := &recordingSender{}
	c := &KafkaEmailConsumer{emailSender: rs, log: zap.NewNop()}

	assert.False(t, c.handle(kafka.Message{Value: []byte(`not json`)}))
	assert.False(t, c.handle(kafka.Message{Value: []byte(`{"to":"","template":"x"}`)}))
	assert.False(t, c.handle(kafka.Message{Value: []byte(`{"to":"a@b.c","template":""}`)}))
	assert.Empty(t, rs.got)

	rs.err = errors.New("smtp down")
	assert.False(t, c.handle(kafka.Message{Value: []byte(`{"to":"a@b.c","template":"x"}`)}))
	assert.Len(t, rs.got, 1)
}
