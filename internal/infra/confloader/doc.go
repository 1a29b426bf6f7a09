// Package confloader provides configuration loading for authgate.
//
// It uses Koanf for flexible configuration loading from multiple
// sources with priority: Env > File > Default, and fsnotify for
// watching configuration files for changes.
package confloader
