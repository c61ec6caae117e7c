// Command memxbar assembles memory hierarchies built around crossbars and
// drives them with synthetic traffic.
package main

func main() {
	Execute()
}
