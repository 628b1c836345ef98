//go:build !zmq

package main

import (
	"context"

	"go.uber.org/zap"
)

// startBlockSignal is a stub for builds without ZMQ: the replay loop only polls.
func startBlockSignal(_ context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("zmq support not built in; ignoring --zmq-addr", zap.String("addr", addr))
	}
	return nil, nil
}
