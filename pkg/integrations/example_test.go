package integrations_test

import (
	"fmt"

	"github.com/matzehuels/repolens/pkg/integrations"
)

func ExampleNormalizeRepoURL() {
	// Various repository URL formats are normalized to HTTPS
	fmt.Println(integrations.NormalizeRepoURL("git@github.com:user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("git://github.com/user/repo"))
	fmt.Println(integrations.NormalizeRepoURL("git+https://github.com/user/repo.git"))
	fmt.Println(integrations.NormalizeRepoURL("https://github.com/user/repo"))
	// Output:
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
	// https://github.com/user/repo
}

func Example_errors() {
	// Upstream statuses map onto a fixed set of sentinels
	fmt.Println("ErrUnauthorized:", integrations.ErrUnauthorized)
	fmt.Println("ErrNotFound:", integrations.ErrNotFound)
	fmt.Println("ErrNetwork:", integrations.ErrNetwork)
	// Output:
	// ErrUnauthorized: unauthorized: invalid or missing credentials
	// ErrNotFound: not found: repository or resource does not exist
	// ErrNetwork: network error
}
