// Package tex recognizes the whitelisted TeX math shapes accepted by texsvg.
//
// A TeX fragment is accepted only when the whole input, ignoring leading
// whitespace and trailing whitespace or comment characters, is wrapped by one
// of a fixed set of delimiters:
//
//	\( ... \)                             inline
//	\[ ... \]                             display
//	\begin{equation}  ... \end{equation}  display
//	\begin{equation*} ... \end{equation*} display
//	\begin{align}     ... \end{align}     display
//	\begin{align*}    ... \end{align*}    display
//
// Patterns are tried in that order and the first match wins. Anything else,
// including $...$ math, surrounding prose or several top-level expressions,
// is rejected rather than partially rendered.
//
// For the align environments the payload keeps its \begin/\end wrapper,
// because the renderer needs the environment to lay out aligned rows.
//
//	m, err := tex.Classify(`\(x^2\)`)
//	// m.Content == "x^2", m.Display == false
package tex
