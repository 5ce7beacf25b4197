// Package scenario defines verification flows as ordered lists of browser steps.
//
// Three flows are built in (app-loads, hidden-buttons, deployed-login) and
// more can be declared in YAML:
//
//	scenarios:
//	  - name: dashboard-loads
//	    steps:
//	      - action: goto
//	        url: http://localhost:5173/tablero
//	        wait_until: networkidle
//	        timeout: 60s
//	      - action: expect_visible
//	        locator: {by: role, value: heading, name: Tablero}
//	      - action: screenshot
//	        path: verification.png
//
// Sets are filtered with glob patterns, e.g. "*login*".
package scenario
