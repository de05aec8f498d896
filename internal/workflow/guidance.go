package workflow

// Manual resolution steps shown after a conflict. Each is markdown for the
// terminal renderer; the engine also logs the plain lines.

const cherryPickGuidance = `## Cherry-pick conflict

The cherry-pick stopped on merge conflicts. Resolve them manually:

1. Run ` + "`git status`" + ` to identify conflicted files.
2. Edit the files to resolve the conflicts.
3. Run ` + "`git add <resolved_files>`" + ` to stage them.
4. Run ` + "`git cherry-pick --continue`" + ` to finish.

To give up instead, run ` + "`git cherry-pick --abort`" + `.
`

const stashGuidance = `## Stash conflict

Your stashed changes conflicted with the pulled changes. The stash entry was kept.

1. Run ` + "`git status`" + ` to identify conflicted files.
2. Edit the files to resolve the conflicts.
3. Run ` + "`git add <resolved_files>`" + ` to mark them resolved.
4. Run ` + "`git stash drop`" + ` once your changes are safe.
`

const pullGuidance = `## Pull conflict

Pulling stopped on merge conflicts.

1. Run ` + "`git status`" + ` to identify conflicted files.
2. Resolve the conflicts and ` + "`git add`" + ` the files.
3. Run ` + "`git commit`" + ` to finish the merge, or ` + "`git merge --abort`" + ` to undo it.
`

//nolint:gochecknoglobals // fixed text
var cherryPickInstructions = []string{
	"Merge conflicts detected! Please resolve them manually:",
	"  1. Use 'git status' to identify conflicted files.",
	"  2. Edit files to resolve conflicts.",
	"  3. Use 'git add <resolved_files>' to stage changes.",
	"  4. Run 'git cherry-pick --continue' to finish.",
	"  (To abort: 'git cherry-pick --abort')",
}
