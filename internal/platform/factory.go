package platform

import (
	"context"
	"errors"
	"io"

	"github.com/aretw0/introspection"

	"github.com/Tanya2303/Edvora/pkg/bridge"
	"github.com/Tanya2303/Edvora/pkg/core"
)

// Instance wires one execution context: a storage adapter, the Store over
// it and a Bridge attached to the Store.
type Instance struct {
	Storage core.Storage
	Store   *core.Store
	Bridge  *bridge.Bridge
}

// New opens the storage, loads the collection and attaches a Bridge.
//
//	inst, err := edvora.New("~/.edvora", edvora.WithAdapter("sqlite"))
//
// A collection that cannot be read does not fail New: the Store starts empty
// and the error is logged, as it would be on any later reload.
func New(uri string, opts ...Option) (*Instance, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage, err := open(uri, o)
	if err != nil {
		return nil, err
	}

	var storeOpts []core.StoreOption
	if o.logger != nil {
		storeOpts = append(storeOpts, core.WithLogger(o.logger))
	}
	if key, ok := o.config["store_key"].(string); ok {
		storeOpts = append(storeOpts, core.WithKey(key))
	}
	if name, ok := o.config["name"].(string); ok {
		storeOpts = append(storeOpts, core.WithName(name))
	}
	if fn, ok := o.config["persist_error_handler"].(func(error)); ok {
		storeOpts = append(storeOpts, core.WithPersistErrorHandler(fn))
	}

	store := core.NewStore(storage, storeOpts...)
	if err := store.Initialize(context.Background()); err != nil && !errors.Is(err, core.ErrPersistence) {
		return nil, err
	}

	br := bridge.New(storage, bridge.WithLogger(o.logger), bridge.WithPattern(store.Key()))
	br.Attach(store)

	return &Instance{Storage: storage, Store: store, Bridge: br}, nil
}

// Close releases the storage if it holds resources (database handles).
func (i *Instance) Close() error {
	if c, ok := i.Storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// InstanceState aggregates the introspection state of every component.
type InstanceState struct {
	Store   any `json:"store"`
	Bridge  any `json:"bridge"`
	Storage any `json:"storage,omitempty"`
}

// State implements introspection.Introspectable.
func (i *Instance) State() any {
	st := InstanceState{
		Store:  i.Store.State(),
		Bridge: i.Bridge.State(),
	}
	if in, ok := i.Storage.(introspection.Introspectable); ok {
		st.Storage = in.State()
	}
	return st
}

// ComponentType implements introspection.Component.
func (i *Instance) ComponentType() string {
	return "instance"
}

var _ introspection.Introspectable = (*Instance)(nil)
var _ introspection.Component = (*Instance)(nil)
