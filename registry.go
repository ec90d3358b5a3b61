package endpoints

import (
	"fmt"
	"sort"
	"sync"
)

// announcements is the static discovery registry: endpoint constructors
// recorded from init functions, keyed by module name. Go cannot enumerate
// the types implementing an interface at runtime, so discovery is an
// explicit registry populated by static initialization.
var (
	announceMu    sync.Mutex
	announcements = make(map[string][]any)
)

// Announce records an endpoint constructor under a module name for later
// discovery by RegisterDiscovered. It is meant to be called from init:
//
//	func init() {
//	    endpoints.Announce("users", NewGetUser)
//	}
//
// Announce panics if ctor is not a constructor for a concrete Endpoint
// type; the process fails before serving rather than mapping a partial API.
func Announce(module string, ctor any) {
	if _, err := validateEndpointCtor(ctor); err != nil {
		panic(fmt.Sprintf("endpoints: announce %q: %v", module, err))
	}

	announceMu.Lock()
	defer announceMu.Unlock()
	announcements[module] = append(announcements[module], ctor)
}

// Modules returns the names of all announced modules, sorted.
func Modules() []string {
	announceMu.Lock()
	defer announceMu.Unlock()

	names := make([]string, 0, len(announcements))
	for name := range announcements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// announced returns the constructors recorded for the named modules, or for
// every module when none are named. Unknown module names contribute
// nothing; an empty result is not an error.
func announced(modules ...string) []any {
	announceMu.Lock()
	defer announceMu.Unlock()

	if len(modules) == 0 {
		modules = make([]string, 0, len(announcements))
		for name := range announcements {
			modules = append(modules, name)
		}
		sort.Strings(modules)
	}

	var ctors []any
	for _, name := range modules {
		ctors = append(ctors, announcements[name]...)
	}
	return ctors
}

// resetAnnouncements clears the registry. Test use only.
func resetAnnouncements() {
	announceMu.Lock()
	defer announceMu.Unlock()
	announcements = make(map[string][]any)
}
