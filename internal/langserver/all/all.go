// Package all blank-imports every compiled-in language profile so that
// importing it is enough to populate the langserver registry. Callers that
// only need a handful of languages can import the individual
// internal/langserver/<lang> packages instead and skip the rest.
package all

import (
	_ "multilsp/internal/langserver/clojure"
	_ "multilsp/internal/langserver/cpp"
	_ "multilsp/internal/langserver/csharp"
	_ "multilsp/internal/langserver/dart"
	_ "multilsp/internal/langserver/elixir"
	_ "multilsp/internal/langserver/golang"
	_ "multilsp/internal/langserver/java"
	_ "multilsp/internal/langserver/javascript"
	_ "multilsp/internal/langserver/kotlin"
	_ "multilsp/internal/langserver/perl"
	_ "multilsp/internal/langserver/php"
	_ "multilsp/internal/langserver/python"
	_ "multilsp/internal/langserver/ruby"
	_ "multilsp/internal/langserver/rust"
	_ "multilsp/internal/langserver/typescript"
)
