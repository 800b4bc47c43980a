package encoders

import (
	"github.com/custodia-labs/sapbatch/internal/core/domain"
	"github.com/custodia-labs/sapbatch/internal/core/ports/driven"
	"github.com/custodia-labs/sapbatch/internal/encoders/parquet"
	"github.com/custodia-labs/sapbatch/internal/encoders/tsv"
)

// RegisterDefaults registers all built-in encoders with the registry.
// Call this during application initialisation.
func RegisterDefaults(r *Registry) {
	r.Register(domain.FormatCSV, buildTSV)
	r.Register(domain.FormatParquet, buildParquet)
}

// NewDefaultRegistry returns a registry with the built-in encoders.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

// buildTSV creates the tab-delimited encoder. Supported config keys:
//   - crlf (bool): terminate lines with \r\n (default: false)
func buildTSV(cfg map[string]any) (driven.TableEncoder, error) {
	var opts []tsv.Option
	if crlf, ok := cfg["crlf"].(bool); ok && crlf {
		opts = append(opts, tsv.WithCRLF())
	}
	return tsv.New(opts...), nil
}

// buildParquet creates the parquet encoder. Supported config keys:
//   - parallelism (int): concurrent column writers (default: 4)
func buildParquet(cfg map[string]any) (driven.TableEncoder, error) {
	var opts []parquet.Option
	if n := getIntFromConfig(cfg, "parallelism"); n > 0 {
		opts = append(opts, parquet.WithParallelism(n))
	}
	return parquet.New(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
