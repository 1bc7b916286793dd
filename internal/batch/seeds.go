package batch

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rohmanhakim/site-word-scanner/pkg/urlutil"
)

var (
	ErrNoSeeds      = errors.New("no seeds to scan")
	ErrReadSeedFile = errors.New("failed to read seed file")
)

// LoadSeeds turns the CLI input argument into the list of seeds to scan.
// Input starting with http:// or https:// is a single seed. Anything else
// is a path to a file holding one seed per line; lines are trimmed and
// blank lines dropped. Seeds are not validated here, an invalid seed yields
// an unsuccessful scan.
func LoadSeeds(input string) ([]string, error) {
	if urlutil.HasHTTPScheme(input) {
		return []string{input}, nil
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadSeedFile, input, err)
	}

	var seeds []string
	for _, line := range strings.Split(string(content), "\n") {
		seed := strings.TrimSpace(line)
		if seed == "" {
			continue
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrNoSeeds, input)
	}
	return seeds, nil
}
