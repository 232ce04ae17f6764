// Command daylog validates daily activity logs and reports on logged time.
package main

import "github.com/papapumpkin/daylog/cmd"

func main() {
	cmd.Execute()
}
