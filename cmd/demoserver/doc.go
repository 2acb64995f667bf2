// Command demoserver serves the static demo page.
//
// GET and POST on / return <static>/index.html, every other path is served from
// the static folder.
//
// Usage:
//
//	demoserver [--static ../static] [--addr 127.0.0.1:8080]
package main
