package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/martinlindhe/notify"
	"go.uber.org/multierr"
)

// Desktop shows OS toast notifications. The underlying library shells out
// to the platform notifier and reports nothing back, so failures surface
// only as panics; Send converts those to errors and tries the audible
// alert path once before giving up.
type Desktop struct {
	AppName string
}

// NewDesktop probes whether the platform can show notifications at all and
// returns nil when it cannot (headless session, notify-send missing).
func NewDesktop(appName string) *Desktop {
	if appName == "" {
		appName = "statuswatch"
	}
	if !desktopAvailable() {
		return nil
	}
	return &Desktop{AppName: appName}
}

func desktopAvailable() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return true
	case "linux", "freebsd", "netbsd", "openbsd":
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return false
		}
		_, err := exec.LookPath("notify-send")
		return err == nil
	default:
		return false
	}
}

func (d *Desktop) Send(ctx context.Context, title, text string) error {
	if d == nil {
		return errors.New("desktop notifications unavailable")
	}
	err := d.toast(title, text)
	if err == nil {
		return nil
	}
	if alertErr := d.alert(title, text); alertErr != nil {
		return multierr.Append(err, alertErr)
	}
	return nil
}

func (d *Desktop) toast(title, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("toast: %v", r)
		}
	}()
	notify.Notify(d.AppName, title, text, "")
	return nil
}

func (d *Desktop) alert(title, text string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("alert: %v", r)
		}
	}()
	notify.Alert(d.AppName, title, text, "")
	return nil
}
