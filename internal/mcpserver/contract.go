package mcpserver

// LinkSyntaxContract describes the cross-reference syntax that LLM
// consumers should use when writing workspace files.
const LinkSyntaxContract = `# Ansuz Wiki Link Syntax

Workspace files reference each other by name using double square brackets.

## Syntax

` + "```" + `markdown
See [[Getting Started]] for an introduction.
The .md suffix is optional: [[Notes]] and [[Notes.md]] resolve identically.
` + "```" + `

## Rules

1. **Match is by file name, not path.** Folder placement does not affect
   resolution.
2. **Matching is case-insensitive** and tolerant of a leading or missing
   ` + "`.md`" + ` suffix: a token ` + "`[[Notes]]`" + ` resolves to a file named
   ` + "`Notes`" + `, ` + "`notes.md`" + `, or ` + "`NOTES.MD`" + `.
3. **Unmatched tokens are not errors.** The preview shows a broken-link
   marker with an affordance to create the missing file (` + "`.md`" + ` appended
   automatically).
4. **Duplicate names resolve deterministically** to the file with the
   lexicographically smallest id. Prefer unique file names.
`
