package bench

import (
	"fmt"
	"log"

	"github.com/VeldsparCrypto/SWSQLite/internal/version"
	"github.com/alexflint/go-arg"
	"github.com/hashicorp/go-multierror"
)

// Config represents the configuration for swsqlitebench.
type Config struct {
	Rows                 int    `arg:"--rows,env:SWSQLITEBENCH_ROWS" help:"Rows inserted one by one by the simple benchmark" default:"10000"`
	BatchRows            int    `arg:"--batch-rows,env:SWSQLITEBENCH_BATCH_ROWS" help:"Rows inserted in one transaction by the many benchmark" default:"1000"`
	Reads                int    `arg:"--reads,env:SWSQLITEBENCH_READS" help:"Times the many benchmark reads every row" default:"1000"`
	LargeRows            int    `arg:"--large-rows,env:SWSQLITEBENCH_LARGE_ROWS" help:"Rows inserted by the large benchmark" default:"1000"`
	BlobBytes            int    `arg:"--blob-bytes,env:SWSQLITEBENCH_BLOB_BYTES" help:"Size of the blob of each row in the large benchmark" default:"10000"`
	Directory            string `arg:"--directory,env:SWSQLITEBENCH_DIRECTORY" help:"Directory for the benchmark databases, a temporary one is used and removed when empty"`
	DisableOptimizations bool   `arg:"--disable-optimizations,env:SWSQLITEBENCH_DISABLE_OPTIMIZATIONS" help:"Run the benchmarks without the performance pragmas" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.BenchVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// validate checks that every count is positive.
func (c Config) validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{name: "rows", value: c.Rows},
		{name: "batch-rows", value: c.BatchRows},
		{name: "reads", value: c.Reads},
		{name: "large-rows", value: c.LargeRows},
		{name: "blob-bytes", value: c.BlobBytes},
	}

	errs := new(multierror.Error)
	for _, count := range counts {
		if count.value <= 0 {
			errs = multierror.Append(errs, fmt.Errorf("invalid %s, must be greater than zero", count.name))
		}
	}

	return errs.ErrorOrNil()
}
