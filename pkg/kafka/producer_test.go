package kafka

import (
	"context"
	"path/filepath"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradercheck/tradercheck/pkg/tlsutil"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
}

func TestNewProducer_UnsupportedMechanism(t *testing.T) {
	_, err := NewProducer(Config{SASLEnabled: true, SASLMechanism: "GSSAPI"})
	assert.ErrorContains(t, err, "unsupported SASL mechanism")
}

func TestConfig_Mechanism(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantNil  bool
	}{
		{name: "disabled", cfg: Config{}, wantNil: true},
		{name: "plain by default", cfg: Config{SASLEnabled: true, SASLUsername: "u", SASLPassword: "p"}, wantName: "PLAIN"},
		{name: "scram sha256", cfg: Config{SASLEnabled: true, SASLMechanism: "SCRAM-SHA-256", SASLUsername: "u", SASLPassword: "p"}, wantName: "SCRAM-SHA-256"},
		{name: "scram sha512", cfg: Config{SASLEnabled: true, SASLMechanism: "SCRAM-SHA-512", SASLUsername: "u", SASLPassword: "p"}, wantName: "SCRAM-SHA-512"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.cfg.mechanism()
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, tt.wantName, m.Name())
		})
	}
}

func TestProducer_WriterIsCachedPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}, TLS: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	first := p.writer("tradercheck.events")
	second := p.writer("tradercheck.events")
	other := p.writer("tradercheck.audit")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
	assert.NotNil(t, first.Transport)
	assert.Len(t, p.writers, 2)
}

func TestNewProducer_TLS(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, tlsutil.GenerateDevCerts(dir, "localhost"))

	p, err := NewProducer(Config{Brokers: []string{"localhost:9093"}, TLS: true, CAFile: filepath.Join(dir, tlsutil.CAFile)})
	require.NoError(t, err)
	require.NotNil(t, p.transport.TLS)
	assert.NotNil(t, p.transport.TLS.RootCAs)

	_, err = NewProducer(Config{Brokers: []string{"localhost:9093"}, TLS: true, CAFile: filepath.Join(dir, "missing.pem")})
	assert.Error(t, err)

	_, err = NewConsumer(Config{Brokers: []string{"localhost:9093"}, TLS: true, CAFile: filepath.Join(dir, "missing.pem")}, "tradercheck.events", nil, nil)
	assert.Error(t, err)
}

func TestProducer_PublishNothing(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	assert.NoError(t, p.Publish(context.Background(), "tradercheck.events"))
	assert.Empty(t, p.writers)
}

func TestMessageConversionRoundTrip(t *testing.T) {
	in := Message{
		Key:     []byte("record-1"),
		Value:   []byte(`{"score":20}`),
		Headers: map[string]string{"event_type": "record.reported"},
	}

	converted := toKafkaMessages([]Message{in})
	require.Len(t, converted, 1)
	assert.Equal(t, []kafkago.Header{{Key: "event_type", Value: []byte("record.reported")}}, converted[0].Headers)

	out := fromKafkaMessage(converted[0])
	assert.Equal(t, in, out)
}
