package providers

import (
	"donosync/internal/structures"
	"errors"
	"fmt"
	"net/url"

	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if err := validateStreamAddress(cv.conf.Stream.Address); err != nil {
		return err
	}

	hb := cv.conf.Stream.Heartbeat
	if hb.Enabled {
		if hb.Interval <= 0 || hb.Timeout <= 0 {
			return errors.New("stream.heartbeat: interval and timeout must be positive when enabled")
		}
		if hb.Timeout >= hb.Interval {
			return fmt.Errorf("stream.heartbeat: timeout %s must be shorter than interval %s", hb.Timeout, hb.Interval)
		}
		if hb.Message == "" {
			return errors.New("stream.heartbeat: message must not be empty when enabled")
		}
	}

	return nil
}

func validateStreamAddress(address string) error {
	u, err := url.Parse(address)
	if err != nil {
		return fmt.Errorf("stream.address: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("stream.address: unsupported scheme %q, want ws or wss", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("stream.address: missing host")
	}
	return nil
}
