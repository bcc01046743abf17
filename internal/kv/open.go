// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package kv

import "fmt"

// Options selects and configures a backend.
type Options struct {
	Backend string // "memory", "file", "sqlite", "valkey"

	DataDir    string
	SQLitePath string

	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
}

// Open builds the backend named in opts and wraps it in a Store.
func Open(opts Options) (*Store, error) {
	var (
		b   Backend
		err error
	)

	switch opts.Backend {
	case "memory":
		b = NewMemory()
	case "", "file":
		b, err = NewFile(opts.DataDir)
	case "sqlite":
		b, err = OpenSQLite(opts.SQLitePath)
	case "valkey":
		client, cerr := ConnectValkey(opts.ValkeyHost, opts.ValkeyPort, opts.ValkeyPassword)
		if cerr != nil {
			return nil, cerr
		}
		b = NewValkey(client)
	default:
		return nil, fmt.Errorf("kv: unknown backend %q", opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewStore(b), nil
}
