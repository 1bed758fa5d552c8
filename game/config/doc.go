// Package config provides runtime settings for the Armada server.
//
// Settings are resolved from built-in defaults, an optional config
// file, and ARMADA_-prefixed environment variables (ARMADA_PORT,
// ARMADA_BOARD_SIZE, ...). The scripted-opponent delay is cosmetic
// "thinking time" only; game correctness never depends on it.
package config
