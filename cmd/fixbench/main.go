// fixbench times the public parse entry point over a fixture message and
// reports elapsed time for each tokenizer strategy.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/fixwire/fixwire"
	"github.com/fixwire/fixwire/wire"
)

type result struct {
	Strategy   string  `json:"strategy"`
	Iterations int     `json:"iterations"`
	NsPerOp    float64 `json:"ns_per_op"`
	MBPerSec   float64 `json:"mb_per_sec"`
	MsgType    string  `json:"msg_type"`
	Fields     int     `json:"fields"`
	Bytes      int     `json:"bytes"`
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Str("app", "fixbench").Logger()

	if err := run(*configPath, logger); err != nil {
		fmt.Fprintf(os.Stderr, "fixbench: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, logger zerolog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if !cfg.Verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	payload, err := loadPayload(cfg.Fixture)
	if err != nil {
		return err
	}
	logger.Info().Int("bytes", len(payload)).Int("iterations", cfg.Iterations).Msg("starting benchmark")

	results := make([]result, 0, len(cfg.Strategies))
	for _, strategy := range cfg.Strategies {
		opts := []fixwire.Option{fixwire.WithStrategy(strategy)}
		if cfg.Verbose {
			opts = append(opts, fixwire.WithLogger(logger))
		}
		parser := fixwire.New(opts...)
		if cfg.Dictionary != "" {
			if err := parser.LoadDictionary(cfg.Dictionary); err != nil {
				return err
			}
		}

		res, err := runStrategy(parser, strategy, payload, cfg.Iterations)
		if err != nil {
			return err
		}
		results = append(results, res)
		logger.Info().
			Stringer("strategy", strategy).
			Float64("ns_per_op", res.NsPerOp).
			Float64("mb_per_sec", res.MBPerSec).
			Msg("strategy finished")
	}

	out, err := gojson.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runStrategy(parser *fixwire.Fixwire, strategy wire.Strategy, payload []byte, iterations int) (result, error) {
	// Warm parse, also the source of the reported field count.
	msg, err := parser.Parse(payload)
	if err != nil {
		return result{}, fmt.Errorf("%v parse: %w", strategy, err)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := parser.Parse(payload); err != nil {
			return result{}, fmt.Errorf("%v parse: %w", strategy, err)
		}
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iterations)
	return result{
		Strategy:   strategy.String(),
		Iterations: iterations,
		NsPerOp:    nsPerOp,
		MBPerSec:   float64(len(payload)) / nsPerOp * 1e3, // bytes/ns -> MB/s
		MsgType:    msg.MsgType(),
		Fields:     msg.NumFields(),
		Bytes:      len(payload),
	}, nil
}

// loadPayload reads the fixture file, or falls back to a built-in execution
// report when no fixture is configured.
func loadPayload(path string) ([]byte, error) {
	if path == "" {
		return samplePayload(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return data, nil
}

func samplePayload() []byte {
	soh := "\x01"
	fields := []string{
		"35=8", "34=215", "49=BROKER", "56=CLIENT", "52=20240312-14:05:52.113",
		"37=10042", "11=ORD-7781", "17=EXEC-5513", "150=F", "39=2",
		"55=MSFT", "54=1", "38=100", "44=415.25", "59=0",
		"32=100", "31=415.25", "151=0", "14=100", "6=415.25",
		"60=20240312-14:05:52", "58=Filled", "1=ACC-77", "40=2", "15=USD", "21=1",
	}
	body := strings.Join(fields, soh) + soh
	head := "8=FIX.4.4" + soh + "9=" + strconv.Itoa(len(body)) + soh
	sum := wire.Checksum([]byte(head + body))
	return []byte(head + body + fmt.Sprintf("10=%03d", sum) + soh)
}
