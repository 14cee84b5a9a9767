// Package cache prunes files earlier runs left behind: stale mpv sockets and old logs.
package cache

import (
	"os"
	"time"

	"github.com/gxplayer/gxplayer/filesystem"
	"github.com/gxplayer/gxplayer/log"
	"github.com/gxplayer/gxplayer/where"
)

const (
	// SocketTTL is the age after which a leftover socket is considered abandoned.
	SocketTTL = 24 * time.Hour

	// LogTTL is how long daily log files are kept.
	LogTTL = 14 * 24 * time.Hour
)

// Prune removes regular files under dir last modified more than ttl ago and
// returns how many were removed. A missing dir is not an error.
func Prune(dir string, ttl time.Duration) (int, error) {
	fs := filesystem.API()
	now := time.Now()
	removed := 0

	err := fs.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}

		if info.IsDir() || now.Sub(info.ModTime()) <= ttl {
			return nil
		}

		if err := fs.Remove(path); err != nil {
			return err
		}
		removed++
		return nil
	})

	return removed, err
}

// CollectGarbage prunes the temp and log directories.
func CollectGarbage() {
	for dir, ttl := range map[string]time.Duration{
		where.Temp(): SocketTTL,
		where.Logs(): LogTTL,
	} {
		removed, err := Prune(dir, ttl)
		if err != nil {
			log.Warnf("prune %s: %v", dir, err)
			continue
		}
		if removed > 0 {
			log.Debugf("pruned %d files from %s", removed, dir)
		}
	}
}
