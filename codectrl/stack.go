package codectrl

import (
	"bufio"
	"os"
	"reflect"
	"strings"

	"github.com/STBoyden/bag"
	e "github.com/STBoyden/bag/error"

	b "github.com/STBoyden/codectrl-go-protobufs/data/backtrace_data"
	"github.com/go-errors/errors"
)

var ownPackage = reflect.TypeOf(Reporter{}).PkgPath()

type frameKey struct {
	file string
	line uint32
}

func deduplicateStack(stack []*b.BacktraceData) []*b.BacktraceData {
	seen := bag.New[frameKey]()
	result := []*b.BacktraceData{}

	for _, frame := range stack {
		key := frameKey{file: frame.GetFilePath(), line: frame.GetLineNumber()}

		if seen.Occurrence(key) == 0 {
			result = append(result, frame)
		}

		seen.Insert(key)
	}

	return result
}

func skipFrame(frame errors.StackFrame) bool {
	switch frame.Package {
	case "runtime", "testing":
		return true
	case ownPackage:
		return !strings.HasSuffix(frame.File, "_test.go")
	}

	goroot := os.Getenv("GOROOT")

	return goroot != "" && strings.HasPrefix(frame.File, goroot)
}

// getStackTrace returns the caller's frames, outermost first. Frames whose
// source cannot be read are kept without code.
func getStackTrace() []*b.BacktraceData {
	stack := errors.Wrap("stack", 0).StackFrames()
	bstack := []*b.BacktraceData{}

	for _, frame := range stack {
		if skipFrame(frame) {
			continue
		}

		code, err := frame.SourceLine()

		if err != nil {
			code, _ = getCode(frame.File, uint32(frame.LineNumber))
		}

		bstack = append(
			[]*b.BacktraceData{
				{
					LineNumber:   uint32(frame.LineNumber),
					ColumnNumber: uint32(0),
					FilePath:     frame.File,
					Name:         frame.Name,
					Code:         code,
				},
			},
			bstack...)
	}

	return deduplicateStack(bstack)
}

func getCode(filePath string, lineNumber uint32) (string, error) {
	if lineNumber == 0 {
		return "", errors.Wrap(e.New(e.LineNumZeroError, filePath), 0)
	}

	lines, err := readLines(filePath)

	if err != nil {
		return "", errors.Wrap(err, 0)
	}

	if len(lines) < int(lineNumber) {
		return "", errors.Wrap(e.New(e.LineNumTooLargeError, filePath), 0)
	}

	return lines[lineNumber-1], nil
}

// getCodeSnippet returns the lines within surround of lineNumber, keyed by
// their 1-based line number.
func getCodeSnippet(filePath string, lineNumber uint32, surround uint32) (map[uint32]string, error) {
	lines, err := readLines(filePath)

	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	first := int64(lineNumber) - int64(surround)
	last := int64(lineNumber) + int64(surround)

	if first < 1 {
		first = 1
	}

	if last > int64(len(lines)) {
		last = int64(len(lines))
	}

	snippet := map[uint32]string{}

	for n := first; n <= last; n++ {
		snippet[uint32(n)] = lines[n-1]
	}

	return snippet, nil
}

func readLines(filePath string) ([]string, error) {
	file, err := os.Open(filePath)

	if err != nil {
		return nil, errors.Wrap(e.New(e.IoError, err.Error()), 0)
	}

	defer file.Close()

	lines := []string{}
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(e.New(e.IoError, err.Error()), 0)
	}

	return lines, nil
}
