package filler

import (
	"context"
	"fmt"
	"time"
)

// Wait blocks until the device is detected. A failed detection counts as a
// miss. Unless MaxAttempts was set, Wait only gives up when ctx is done.
func (f *Filler) Wait(ctx context.Context) error {
	f.log.Info().Msg("Waiting for Kindle device to be connected")
	f.log.Info().Msg("Please connect your Kindle via USB and enable MTP mode")
	for attempt := 1; ; attempt++ {
		found, err := f.device.Detect(ctx)
		switch {
		case err != nil:
			f.log.Warn().Err(err).Int("attempt", attempt).Msg("Error detecting device")
		case found:
			f.log.Info().Msg("Kindle found and ready")
			return nil
		default:
			f.log.Info().Int("attempt", attempt).Msg("No Kindle device found")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.attempts > 0 && attempt >= f.attempts {
			return fmt.Errorf("%w after %d attempts", ErrDeviceNotFound, attempt)
		}
		f.log.Info().Msg("Kindle not detected. Connect it via USB, enable MTP mode and wait for it to be recognized")
		if err := f.sleep(ctx, f.interval); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
