// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package config loads textpaste configuration files.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+  +----+----+  +----+----+
	|   YAML   |  |  JSON   |  |   HCL   |
	|  Parser  |  | Parser  |  | Parser  |
	+----------+  +---------+  +---------+

🎯 Purpose:
- Picks a parser by file extension
- Rejects unknown fields
- Fills in defaults (language "en", settings key "textpaste")

🔄 Flow:
1. Find looks for .textpaste.{yaml,yml,json,hcl} in a directory
2. Load parses the file and resolves the drawing path against it
3. Validate checks the language tag and layer globs

🔍 Example:

	cfg, err := config.Find(ctx, ".")
	if err != nil {
		return err
	}
	fmt.Println(cfg.Drawing, cfg.Language)

HCL configs may reference environment variables:

	drawing  = "${env.PLANS}/level-2.yaml"
	language = "ru"

	telemetry {
		disabled = true
	}
*/
package config
