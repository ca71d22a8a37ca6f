package coupon

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const registryBloomFPR = 0.01

// Registry is a fixed, case-insensitive mapping from coupon code to Coupon.
// It is populated once at startup and read-only afterwards. A bloom filter
// front-ends the map so that lookups of unknown codes (the common case for
// typos and guessed codes) skip the map entirely.
type Registry struct {
	coupons map[string]Coupon
	filter  *bloom.BloomFilter
}

// NewRegistry builds a Registry from the given coupons. Codes are matched
// case-insensitively; later duplicates replace earlier ones.
func NewRegistry(coupons []Coupon) *Registry {
	n := len(coupons)
	if n == 0 {
		n = 1
	}

	r := &Registry{
		coupons: make(map[string]Coupon, len(coupons)),
		filter:  bloom.NewWithEstimates(uint(n), registryBloomFPR),
	}
	for _, c := range coupons {
		key := strings.ToUpper(c.Code)
		r.coupons[key] = c
		r.filter.AddString(key)
	}
	return r
}

// Lookup returns the coupon registered under the given code, matched
// case-insensitively.
func (r *Registry) Lookup(code string) (Coupon, bool) {
	key := strings.ToUpper(code)
	if !r.filter.TestString(key) {
		return Coupon{}, false
	}
	c, ok := r.coupons[key]
	return c, ok
}

// Len returns the number of registered coupons.
func (r *Registry) Len() int {
	return len(r.coupons)
}

// LoadFiles reads coupon definitions from the given JSON files (gzip
// transparently decompressed for .gz paths), decoding them concurrently,
// and returns a Registry over the merged set.
func LoadFiles(ctx context.Context, paths ...string) (*Registry, error) {
	var (
		mu  sync.Mutex
		all []Coupon
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			coupons, err := loadFile(path)
			if err != nil {
				return errors.Wrapf(err, "load %s", path)
			}

			mu.Lock()
			all = append(all, coupons...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewRegistry(all), nil
}

func loadFile(path string) ([]Coupon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(err, "create gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	return decodeCoupons(r)
}

// decodeCoupons parses a JSON array of coupon objects:
//
//	[{"code": "DESCONTO10", "type": "percentage", "value": 10,
//	  "min_subtotal": 0, "description": "10% off"}]
func decodeCoupons(r io.Reader) ([]Coupon, error) {
	d := jx.Decode(r, 4096)

	var coupons []Coupon
	if err := d.Arr(func(d *jx.Decoder) error {
		var c Coupon
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "code":
				s, err := d.Str()
				c.Code = s
				return err
			case "type":
				s, err := d.Str()
				c.Type = DiscountType(s)
				return err
			case "value":
				v, err := decodeDecimal(d)
				c.Value = v
				return err
			case "min_subtotal":
				v, err := decodeDecimal(d)
				c.MinSubtotal = v
				return err
			case "description":
				s, err := d.Str()
				c.Description = s
				return err
			default:
				return d.Skip()
			}
		}); err != nil {
			return err
		}

		if c.Code == "" {
			return errors.New("coupon code is required")
		}
		switch c.Type {
		case DiscountPercentage, DiscountFixed:
		default:
			return errors.Errorf("coupon %q: unsupported discount type %q", c.Code, c.Type)
		}
		if !c.Value.IsPositive() {
			return errors.Errorf("coupon %q: value must be positive", c.Code)
		}
		if c.MinSubtotal.IsNegative() {
			return errors.Errorf("coupon %q: min_subtotal must not be negative", c.Code)
		}

		coupons = append(coupons, c)
		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "decode coupons")
	}

	return coupons, nil
}

// decodeDecimal reads a JSON number (or numeric string) as a decimal.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.Trim(string(n), `"`))
}
