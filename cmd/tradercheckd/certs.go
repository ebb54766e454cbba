package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tradercheck/tradercheck/pkg/tlsutil"
)

var (
	certHosts []string
	certOut   string
)

var devCertsCmd = &cobra.Command{
	Use:   "dev-certs",
	Short: "Write a self-signed CA and server certificate",
	Long:  "Generate a throwaway CA and a server certificate for local TLS, then print the matching env settings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := tlsutil.GenerateDevCerts(certOut, certHosts...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "TLS_CERT_FILE=%s\nTLS_KEY_FILE=%s\nKAFKA_CA_FILE=%s\n",
			filepath.Join(certOut, tlsutil.ServerCertFile),
			filepath.Join(certOut, tlsutil.ServerKeyFile),
			filepath.Join(certOut, tlsutil.CAFile))
		return nil
	},
}

func init() {
	devCertsCmd.Flags().StringSliceVar(&certHosts, "host", []string{"localhost", "127.0.0.1"}, "Host names and IPs the server certificate covers")
	devCertsCmd.Flags().StringVar(&certOut, "out", "certs", "Output directory")
}
