package validator

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/openkraft/visionboard/internal/domain"
)

// Options carries what a validator may be configured with.
type Options struct {
	// Now is the reference time for recency checks.
	Now time.Time
	// Params is the check's policy block from the workspace config.
	Params map[string]any
}

type factory func(Options) (Validator, error)

var registry = map[domain.CheckCode]factory{
	domain.CheckGithubOrgMFA: func(opts Options) (Validator, error) {
		var policy MFAPolicy
		if err := decodeParams(opts.Params, &policy); err != nil {
			return nil, err
		}
		return NewGithubOrgMFA(policy)
	},
	domain.CheckSoftwareDesignTraining: func(opts Options) (Validator, error) {
		policy := TrainingPolicy{Now: opts.Now}
		if err := decodeParams(opts.Params, &policy); err != nil {
			return nil, err
		}
		return NewSoftwareDesignTraining(policy)
	},
}

// Create builds the validator registered for code.
func Create(code domain.CheckCode, opts Options) (Validator, error) {
	newValidator, ok := registry[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, code)
	}
	v, err := newValidator(opts)
	if err != nil {
		return nil, fmt.Errorf("configuring %s: %w", code, err)
	}
	return v, nil
}

// Codes lists the registered check codes in catalog order.
func Codes() []domain.CheckCode {
	codes := make([]domain.CheckCode, 0, len(registry))
	for _, code := range domain.KnownCheckCodes {
		if _, ok := registry[code]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// decodeParams decodes a config block into a typed policy. Unknown keys are
// rejected so typos surface instead of silently falling back to defaults.
func decodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			rejectNumericDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(params)
}

var durationType = reflect.TypeOf(time.Duration(0))

// rejectNumericDurationHook refuses bare numbers for durations. Left alone,
// mapstructure would read `validity: 365` as 365 nanoseconds.
func rejectNumericDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != durationType || from == durationType {
		return data, nil
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil, fmt.Errorf("duration %v has no unit, use a duration string such as 8760h", data)
	}
	return data, nil
}
