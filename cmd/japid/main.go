// Command japid runs the demo server for the japi response normalizer.
package main

func main() {
	Execute()
}
