// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/cfnsmoke/internal/meta"
)

const bashCompletionScript = `# bash completion for cfnsmoke
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cfnsmoke()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
    fi

    local opts="--aws-profile --checker --checker-path --cli --color -c --diff --fail-fast --inspect --output -o --plan --region --schema --skip-preflight --tmp-root --help --version"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --tmp-root|--checker-path)
            COMPREPLY=( $(compgen -o dirnames -- "$cur") )
            return 0
            ;;
        --cli|--checker)
            COMPREPLY=( $(compgen -c -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "completion" -- "$cur") )
    fi
    return 0
}

complete -F _cfnsmoke cfnsmoke
`

const zshCompletionScript = `#compdef cfnsmoke

_cfnsmoke() {
  if [[ $words[2] == completion ]]; then
    _arguments '2: :((bash zsh))'
    return
  fi

  _arguments -C \
    '--aws-profile[AWS profile checked by preflight]:profile' \
    '--cli[provider CLI to drive]:command:_command_names' \
    '--checker[static type checker]:command:_command_names' \
    '--checker-path[type checker target]:path:_files' \
    '(-c --color)'{-c,--color}'[enable colored text output]' \
    '--diff[show what init added to each directory]' \
    '--fail-fast[stop at the first failing command]' \
    '--inspect[check the scaffold after init and generate]' \
    '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)' \
    '--plan[print the steps without running them]' \
    '--region[AWS region checked by preflight]:region' \
    '--schema[dump the report schema]' \
    '--skip-preflight[do not probe for tools and AWS config]' \
    '--tmp-root[directory for round directories]:directory:_directories' \
    '(-v --version)'{-v,--version}'[version info]' \
    '1:identifier or command:(completion)'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cfnsmoke cfnsmoke
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	stdout, stderr := writers(cmd)

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(stdout, bashCompletionScript)
		default:
			fmt.Fprintln(stderr, "usage: cfnsmoke completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cfnsmoke completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
