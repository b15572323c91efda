// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) causes the init functions of each concrete storage backend to run,
// which in turn register their factories with the storage package.
//
// In other words, importing this package makes the following storage kinds
// available at runtime:
//
//   - "sqlite"   (salesdw/internal/storage/sqlite)
//   - "postgres" (salesdw/internal/storage/postgres)
//   - "mysql"    (salesdw/internal/storage/mysql)
//   - "mssql"    (salesdw/internal/storage/mssql)
//
// The wiring layer (cmd/dwload) blank-imports this package once; everything
// else depends only on the storage abstraction. A binary that should support
// only a subset of backends can import the required backend packages directly
// instead of this one.
package all

import (
	_ "salesdw/internal/storage/mssql"
	_ "salesdw/internal/storage/mysql"
	_ "salesdw/internal/storage/postgres"
	_ "salesdw/internal/storage/sqlite"
)
