// Package config holds the flat Config struct the CLI builds from flags
// and everything downstream (internal/app) runs from, validated by a
// constructor the way the teacher's app.Config/NewConfig validates a
// required GridPath.
package config
