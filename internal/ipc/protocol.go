package ipc

import (
	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// Wire contract of the exported object. These must not change: external
// callers address the method by interface, path and signature.
const (
	InterfaceName         = "org.gnome.Shell.Extensions.Togler"
	ObjectPath            = dbus.ObjectPath("/org/gnome/Shell/Extensions/Togler")
	MethodToggleByWmClass = "ToggleByWmClass"
)

// Interface describes the exported interface for introspection.
var Interface = introspect.Interface{
	Name: InterfaceName,
	Methods: []introspect.Method{
		{
			Name: MethodToggleByWmClass,
			Args: []introspect.Arg{
				{Name: "wmclass", Type: "s", Direction: "in"},
				{Name: "success", Type: "b", Direction: "out"},
			},
		},
	},
}

// IntrospectNode returns the introspection tree served at ObjectPath.
func IntrospectNode() *introspect.Node {
	return &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			Interface,
		},
	}
}
