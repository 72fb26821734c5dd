// Package slog provides logging decorators for bindery services.
package slog
