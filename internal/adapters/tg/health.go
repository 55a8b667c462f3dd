package tg

import (
	"log/slog"
	"net"
	"time"
)

// IPv4 check
func checkIPv4(logger *slog.Logger) {
	logger.Info("checking IPv4 connectivity...")

	conn, err := net.DialTimeout("tcp4", "8.8.8.8:53", 3*time.Second)
	if err != nil {
		logger.Warn("IPv4 seems not working", "error", err)
		return
	}
	_ = conn.Close()

	logger.Info("IPv4 OK")
}

// IPv6 check
func checkIPv6(logger *slog.Logger) {
	logger.Info("checking IPv6 connectivity...")

	conn, err := net.DialTimeout("tcp6", "[2606:4700:4700::1111]:53", 3*time.Second)
	if err != nil {
		logger.Warn("IPv6 seems not working", "error", err)
		return
	}
	_ = conn.Close()

	logger.Info("IPv6 OK")
}
