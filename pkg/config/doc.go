/*
Package config loads and validates the run configuration for autodocs.

	            +-------------+
	            |   Config    |
	            |  (RunSpec)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |  JSON   |   |   HCL   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Purpose:
- Parse the declarative run configuration
- Reject it whole when anything is wrong
- Resolve the engine credential exactly once

🔄 Flow:
1. Pick a parser from the file extension
2. Decode with unknown fields rejected
3. Validate required fields, globs and the engine name
4. Apply defaults and read the credential file

⚡ Errors:
Every failure is a *ConfigError with a Kind of MissingField, InvalidGlob,
UnknownEngine, InvalidValue or Malformed, naming the offending field.

🔍 Example:

	cfg, err := config.Load(ctx, "autodocs.yaml", engine.Names())
	if err != nil {
		var cerr *config.ConfigError
		if errors.As(err, &cerr) {
			fmt.Printf("bad %s: %s\n", cerr.Field, cerr.Kind)
		}
		return err
	}

The credential is only reachable through Config.APIKey and is left out of
String and of the zerolog representation.
*/
package config
