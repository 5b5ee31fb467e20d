// Package utils provides common utility functions for the teach-sync application.
// It includes helpers for coercing loosely-typed decoded JSON values into strict Go
// types, used at the input validation boundary.
package utils
