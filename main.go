// The wikiref executable. All behavior lives in the cmd package.
package main

import "github.com/wikigrab/wikiref/cmd"

func main() {
	cmd.Execute()
}
