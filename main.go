package main

import (
	"context"
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"i4.energy/across/celllink/modem"
	"i4.energy/across/celllink/serial"
)

func main() {
	flag.String("serial-port", "/dev/ttyUSB0", "Serial port to connect to the modem")
	flag.Int("baud-rate", 115200, "Baud rate for serial communication")
	flag.String("bind-address", "0.0.0.0:7000", "Bind address for the TCP bridge")
	flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.String("apn", "", "Cellular access point name")
	flag.String("remote-host", "", "Destination host name")
	flag.Int("remote-port", 0, "Destination TCP port")
	flag.Parse()

	config, err := LoadConfig(WithDefaults(), WithEnv(), WithFlags(flag.CommandLine))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	switch config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	if config.APN == "" || config.RemoteHost == "" || config.RemotePort == 0 {
		logger.Error("apn, remote-host and remote-port are required")
		os.Exit(1)
	}

	port, err := serial.Open(config.SerialPort, config.BaudRate, serial.Options{
		Logger: logger.With("component", "serial"),
	})
	if err != nil {
		logger.Error("Failed to open serial port", "error", err, "port", config.SerialPort)
		os.Exit(1)
	}

	deviceConfig, err := modem.NewConfigBuilder().
		WithPort(port).
		WithProfile(modem.SIM800()).
		WithBufferSize(1024).
		WithLogger(logger.With("component", "modem")).
		Build()
	if err != nil {
		logger.Error("Failed to create device config", "error", err)
		os.Exit(1)
	}

	device, err := modem.New(deviceConfig)
	if err != nil {
		logger.Error("Failed to create device", "error", err)
		os.Exit(1)
	}

	device.SetAPN(config.APN)
	device.SetHostPort(config.RemoteHost, uint16(config.RemotePort))
	if !device.Connect() {
		logger.Error("Failed to start connection attempt")
		os.Exit(1)
	}

	ln, err := net.Listen("tcp", config.BindAddress)
	if err != nil {
		logger.Error("Failed to listen", "error", err, "address", config.BindAddress)
		os.Exit(1)
	}

	logger.Info("Starting cell link bridge",
		"address", config.BindAddress,
		"serial", config.SerialPort,
		"remote", config.RemoteHost,
	)

	ctx, cancel := context.WithCancel(context.Background())
	bridge := &Bridge{
		Logger: logger.With("component", "bridge"),
		Device: device,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bridge.Serve(ctx, ln)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", "signal", sig.String())
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			logger.Error("Bridge failed", "error", err)
		}
		cancel()
	}

	device.Disconnect()
	// Give the engine a moment to run the close handshake.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && device.State() == modem.Connected {
		device.Run()
		time.Sleep(tickInterval)
	}

	if err := port.Close(); err != nil {
		logger.Error("Failed to close serial port", "error", err)
	}
}
