package notification

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"

	defaultAppName = "region-capture"
	defaultIcon    = "camera-photo"
	defaultTimeout = 5 * time.Second
)

// Notifier raises desktop notifications.
type Notifier interface {
	Notify(summary, body string) error
}

// DBusNotifier talks to the freedesktop notification daemon on the session
// bus. The connection is opened lazily on first use.
type DBusNotifier struct {
	AppName string
	Icon    string
	Timeout time.Duration

	mu      sync.Mutex
	connect func() (dbus.BusObject, error)
	obj     dbus.BusObject
}

// NewDBusNotifier returns a notifier using the shared session bus.
func NewDBusNotifier() *DBusNotifier {
	return &DBusNotifier{
		AppName: defaultAppName,
		Icon:    defaultIcon,
		Timeout: defaultTimeout,
		connect: sessionObject,
	}
}

// NewDBusNotifierWithObject is used by tests to inject a fake bus object.
func NewDBusNotifierWithObject(obj dbus.BusObject) *DBusNotifier {
	n := NewDBusNotifier()
	n.obj = obj
	return n
}

func sessionObject() (dbus.BusObject, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	return conn.Object(notifyDest, notifyPath), nil
}

func (n *DBusNotifier) object() (dbus.BusObject, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.obj != nil {
		return n.obj, nil
	}
	obj, err := n.connect()
	if err != nil {
		return nil, err
	}
	n.obj = obj
	return obj, nil
}

// Notify sends one notification and returns once the daemon has accepted it.
func (n *DBusNotifier) Notify(summary, body string) error {
	obj, err := n.object()
	if err != nil {
		return err
	}

	timeout := int32(n.Timeout / time.Millisecond)
	call := obj.Call(notifyMethod, 0,
		n.AppName, uint32(0), n.Icon, summary, body,
		[]string{}, map[string]dbus.Variant{}, timeout)
	if call.Err != nil {
		return fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	log.Printf("Notification: sent id=%d %q", id, summary)
	return nil
}

// LogNotifier only logs. It is used when no session bus is reachable.
type LogNotifier struct{}

func (LogNotifier) Notify(summary, body string) error {
	log.Printf("Notification: %s: %s", summary, body)
	return nil
}

// Detect returns a DBusNotifier when a session bus is reachable and a
// LogNotifier otherwise.
func Detect() Notifier {
	n := NewDBusNotifier()
	if _, err := n.object(); err != nil {
		log.Printf("Notification: session bus unavailable, falling back to log: %v", err)
		return LogNotifier{}
	}
	return n
}
