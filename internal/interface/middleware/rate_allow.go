package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and RFC 1918 clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(ClientIP(c))
		if ip == nil {
			return false
		}
		return ip.IsLoopback() || ip.IsPrivate()
	}
}

// AllowPaths bypasses the limiter for exact route matches, e.g. health probes.
func AllowPaths(paths ...string) AllowFunc {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return func(c *gin.Context) bool {
		_, ok := set[routePath(c)]
		return ok
	}
}

// AnyOf bypasses when any of the given funcs does.
func AnyOf(fns ...AllowFunc) AllowFunc {
	return func(c *gin.Context) bool {
		for _, fn := range fns {
			if fn != nil && fn(c) {
				return true
			}
		}
		return false
	}
}
