package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDevCerts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateDevCerts(dir, "localhost", "127.0.0.1"))

	cfg, err := LoadServerConfig(filepath.Join(dir, ServerCertFile), filepath.Join(dir, ServerKeyFile))
	require.NoError(t, err)
	assert.Len(t, cfg.Certificates, 1)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)

	raw, err := os.ReadFile(filepath.Join(dir, ServerCertFile))
	require.NoError(t, err)
	block, _ := pem.Decode(raw)
	require.NotNil(t, block)
	leaf, err := x509.ParseCertificate(block.Bytes)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost"}, leaf.DNSNames)
	require.Len(t, leaf.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", leaf.IPAddresses[0].String())

	pool, err := LoadCertPool(filepath.Join(dir, CAFile))
	require.NoError(t, err)
	_, err = leaf.Verify(x509.VerifyOptions{Roots: pool, DNSName: "localhost"})
	assert.NoError(t, err)
}

func TestServerCredentials(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateDevCerts(dir, "localhost"))

	creds, err := ServerCredentials(filepath.Join(dir, ServerCertFile), filepath.Join(dir, ServerKeyFile))
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)
}

func TestClientConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, GenerateDevCerts(dir, "localhost"))

	system, err := ClientConfig("")
	require.NoError(t, err)
	assert.Nil(t, system.RootCAs)

	pinned, err := ClientConfig(filepath.Join(dir, CAFile))
	require.NoError(t, err)
	assert.NotNil(t, pinned.RootCAs)

	_, err = ClientConfig(filepath.Join(dir, CAKeyFile))
	assert.ErrorContains(t, err, "no certificates")
}

func TestLoadServerConfig_MissingFiles(t *testing.T) {
	_, err := LoadServerConfig("/nonexistent/cert.pem", "/nonexistent/key.pem")
	assert.Error(t, err)
}
