package config

import (
	"flag"
	"os"
	"time"
)

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("vaultd", flag.ContinueOnError)
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-driver database driver (postgres|sqlite)
//	-d database DSN
//	-c/-config json file path with configs
//	-log-level log level
//	-kdf-time argon2id time cost
//	-kdf-memory argon2id memory cost in KiB
//	-kdf-threads argon2id parallelism
//	-read-policy access log read policy (fail_closed|fail_open)
//	-share-policy share policy on secret update (refresh|invalidate|keep)
//	-folder-delete-strategy default folder delete strategy (cascade|reparent)
//	-sweep-interval expired share sweep interval (e.g., "1m"); 0 disables
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		driver, dsn, jsonConfigPath, logLevel string
		kdfTime, kdfMemory, kdfThreads        uint
		readPolicy, sharePolicy, deleteStrat  string
		sweepInterval                         time.Duration
	)

	fs.StringVar(&driver, "driver", "", "Database driver (postgres|sqlite)")
	fs.StringVar(&dsn, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.UintVar(&kdfTime, "kdf-time", 0, "Argon2id time cost")
	fs.UintVar(&kdfMemory, "kdf-memory", 0, "Argon2id memory cost in KiB")
	fs.UintVar(&kdfThreads, "kdf-threads", 0, "Argon2id parallelism")
	fs.StringVar(&readPolicy, "read-policy", "", "Access log read policy (fail_closed|fail_open)")
	fs.StringVar(&sharePolicy, "share-policy", "", "Share policy on secret update (refresh|invalidate|keep)")
	fs.StringVar(&deleteStrat, "folder-delete-strategy", "", "Default folder delete strategy (cascade|reparent)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired share sweep interval (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			KDF: KDF{
				Time:    uint32(kdfTime),
				Memory:  uint32(kdfMemory),
				Threads: uint8(kdfThreads),
			},
		},
		Log: Log{Level: logLevel},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    dsn,
			},
		},
		AccessLog:    AccessLog{ReadPolicy: readPolicy},
		Secrets:      Secrets{SharePolicyOnUpdate: sharePolicy},
		Folders:      Folders{DeleteStrategy: deleteStrat},
		Workers:      Workers{SweepInterval: sweepInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}
