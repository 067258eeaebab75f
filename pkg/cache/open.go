package cache

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open creates a cache from a URL:
//
//	""  or "none"                 NullCache
//	file:///path/to/dir           FileCache
//	redis://host:6379/0           RedisCache (also rediss://)
//	mongodb://host:27017/texsvg   MongoCache (also mongodb+srv://)
func Open(ctx context.Context, rawURL string) (Cache, error) {
	if rawURL == "" || rawURL == "none" {
		return NewNullCache(), nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + u.Path
		}
		if dir == "" {
			return nil, fmt.Errorf("file cache url needs a directory: %q", rawURL)
		}
		return NewFileCache(dir)
	case "redis", "rediss":
		return NewRedisCache(ctx, rawURL)
	case "mongodb", "mongodb+srv":
		return NewMongoCache(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, u.Scheme)
	}
}
