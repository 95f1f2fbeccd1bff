// Copyright 2026 The RichQuant Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// disruptor-bench runs an n-producer/m-consumer workload through every
// wait strategy in sequence and reports cursor, checksum, and throughput
// per run.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/richquant-dev/disruptor"
	"github.com/richquant-dev/disruptor/cmd/disruptor-bench/bench"
)

// pauseBetweenRuns lets one run's goroutines fully drain from the
// scheduler before the next strategy's timing starts.
const pauseBetweenRuns = 500 * time.Millisecond

func main() {
	var (
		numProd  int
		numCons  int
		batch    int64
		ringSize int64
		loops    int64
		multi    int
		logFile  string
	)
	flag.IntVar(&numProd, "np", 1, "number of producer threads")
	flag.IntVar(&numCons, "nc", 1, "number of consumer threads")
	flag.Int64Var(&batch, "bs", 1, "batch size per claim, <= ring buffer size")
	flag.Int64Var(&ringSize, "rb", 2048, "ring buffer size, must be a power of two")
	flag.Int64Var(&loops, "loop", 1000, "iterations per producer, in whole ring passes")
	flag.IntVar(&multi, "mt", 0, "claim strategy: 0=single, 1=multi v1, 2=multi v2")
	flag.StringVar(&logFile, "log-file", "", "optional rotating log file path")
	flag.Parse()

	logger := newLogger(logFile)
	defer logger.Sync() //nolint:errcheck

	var claim disruptor.ClaimStrategyKind
	switch multi {
	case 0:
		claim = disruptor.SingleProducer
		if numProd > 1 {
			logger.Warn("single-producer claim strategy selected, forcing np=1",
				zap.Int("requested_np", numProd))
			numProd = 1
		}
	case 1:
		claim = disruptor.MultiProducerV1
	case 2:
		claim = disruptor.MultiProducerV2
	default:
		logger.Fatal("unknown claim strategy", zap.Int("mt", multi))
	}

	pool, err := ants.NewPool(numProd + numCons)
	if err != nil {
		logger.Fatal("create worker pool", zap.Error(err))
	}
	defer pool.Release()

	waits := []struct {
		name string
		kind disruptor.WaitStrategyKind
	}{
		{"Sleeping", disruptor.Sleeping},
		{"Yielding", disruptor.Yielding},
		{"BusySpin", disruptor.BusySpin},
		{"Blocking", disruptor.Blocking},
	}

	logger.Info("starting benchmark",
		zap.Int("np", numProd),
		zap.Int("nc", numCons),
		zap.Int64("batch_size", batch),
		zap.Int64("ring_buffer_size", ringSize),
		zap.Int64("loop", loops),
		zap.Int("mt", multi),
	)

	failed := false
	for i, w := range waits {
		cfg := bench.Config{
			NumProducers: numProd,
			NumConsumers: numCons,
			BatchSize:    batch,
			RingSize:     ringSize,
			Loops:        loops,
			Claim:        claim,
			Wait:         w.kind,
		}

		res, err := bench.Run(logger, pool, cfg)
		if err != nil {
			logger.Error("run failed", zap.String("wait_strategy", w.name), zap.Error(err))
			failed = true
			continue
		}

		pass := res.Checksum(cfg)
		if !pass {
			failed = true
		}
		logger.Info("run complete",
			zap.String("wait_strategy", w.name),
			zap.Int64("cursor", res.Cursor),
			zap.Int64s("sums", res.Sums),
			zap.Int64("expected_sum", bench.ExpectedSum(cfg.Total())),
			zap.Bool("checksum_pass", pass),
			zap.Duration("elapsed", res.Elapsed),
			zap.Int64("ops_per_sec", res.OpsPerSec),
		)

		if i < len(waits)-1 {
			time.Sleep(pauseBetweenRuns)
		}
	}

	if failed {
		logger.Sync() //nolint:errcheck
		os.Exit(1)
	}
}

// newLogger builds a console logger on stdout, teeing into a rotating
// file sink when path is non-empty.
func newLogger(path string) *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zapcore.InfoLevel),
	}
	if path != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   path,
			MaxSize:    100, // MB
			MaxBackups: 2,
			MaxAge:     15, // days
		})
		cores = append(cores, zapcore.NewCore(encoder, w, zapcore.DebugLevel))
	}
	return zap.New(zapcore.NewTee(cores...))
}
