/*
Package theme resolves persona accent colors for the desktop background.

# Features

- Palette with a built-in fallback
- Gradient background derived from the palette
- Persona store client over resty with a circuit breaker and rate limit

# Usage

	client := theme.NewClient(theme.Options{
		BaseURL: "http://localhost:8000",
		Timeout: 2 * time.Second,
	})

	palette := client.Palette(ctx, "persona-42")
	background := palette.Background()

Palette never fails; any lookup problem yields Default().
*/
package theme
