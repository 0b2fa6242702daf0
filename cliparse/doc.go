// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment.

ParseFlags resolves each setting from flags first, environment second:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Settings:

  - Port (-p, PORT): server port, default 4000
  - DatabaseURL (-d, DATABASE_URL): connection string; required for
    postgres, defaults to a local file for sqlite
  - DatabaseType (-t, DATABASE_TYPE): "sqlite" (default) or "postgres"
*/
package cliparse
