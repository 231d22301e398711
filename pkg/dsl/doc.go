/*
Package dsl provides a Go DSL for programmatically constructing Storyboard artboards.

It builds a domain.Document with a fluent builder instead of hand-written JSON
or YAML, which is convenient for tests, examples and generated animations.
States keep the order in which they are declared.

Example usage:

	b := dsl.New("hero")

	b.State("collapsed").
		Initial().
		Hold(500).
		Element(domain.NewElement("box", 0, 0, 100, 40)).
		To("expanded").
		Duration(300).
		Easing(domain.EasingEaseOut)

	b.State("expanded").
		Hold(1000).
		Element(domain.NewElement("box", 0, 0, 300, 200))

	b.Chain("intro", "Intro").Steps("collapsed", "expanded").Mode(domain.ModePingPong)

	doc, err := b.Build()
	// ... engine.Studio().Import("hero", doc, domain.ImportReplace)
*/
package dsl
