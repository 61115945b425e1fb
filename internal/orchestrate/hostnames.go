package orchestrate

import "github.com/plattolabs/stackforge/internal/manifest"

// Public hostnames follow a fixed scheme under the root zone:
// sites     {subdomain}.{env}.{root}
// brand api api.{subdomain}.{env}.{root}
// core api  api.{env}.{root}

func siteHostname(sub, env, root string) string {
	return sub + "." + env + "." + root
}

func apiHostname(brand, sub, env, root string) string {
	if brand == manifest.CoreBrand {
		return "api." + env + "." + root
	}
	return "api." + sub + "." + env + "." + root
}
