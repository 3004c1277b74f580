// Package codectrl sends the debug representation of a bag to a CodeCtrl
// server, together with the backtrace and source snippet of the call site.
package codectrl

import (
	"context"
	"fmt"
	"net"
	"os"
	"reflect"
	"time"

	e "github.com/STBoyden/bag/error"

	l "github.com/STBoyden/codectrl-go-protobufs/data/log"
	logsService "github.com/STBoyden/codectrl-go-protobufs/logs_service"
	"github.com/go-errors/errors"
	"github.com/google/uuid"
	grpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	defaultHost     = "127.0.0.1"
	defaultPort     = "3002"
	defaultSurround = uint32(3)
	defaultTimeout  = 5 * time.Second

	// DebugEnv enables ReportWhenEnv when set, whatever its value.
	DebugEnv = "CODECTRL_DEBUG"
)

// Optional parameters for the Reporter methods.
type ReporterParams struct {
	surround uint32
	host     string
	port     string
	timeout  time.Duration
}

// Creates a new ReporterParams. Zero values fall back to the defaults.
func NewReporterParams(surround uint32, host string, port string, timeout time.Duration) ReporterParams {
	return ReporterParams{surround: surround, host: host, port: port, timeout: timeout}
}

// Creates a new, empty ReporterParams.
func NewEmptyReporterParams() ReporterParams {
	return ReporterParams{}
}

func resolveParams(params []ReporterParams) ReporterParams {
	resolved := ReporterParams{
		surround: defaultSurround,
		host:     defaultHost,
		port:     defaultPort,
		timeout:  defaultTimeout,
	}

	if len(params) == 0 {
		return resolved
	}

	given := params[0]

	if given.surround != 0 {
		resolved.surround = given.surround
	}

	if given.host != "" {
		resolved.host = given.host
	}

	if given.port != "" {
		resolved.port = given.port
	}

	if given.timeout > 0 {
		resolved.timeout = given.timeout
	}

	return resolved
}

// Reporter sends bags to a CodeCtrl server. Anything with a String method
// can be reported; bag.Bag prints its full element to count mapping.
type Reporter struct{}

// Creates a new Reporter.
func NewReporter() Reporter {
	return Reporter{}
}

// Report sends the debug representation of bag, assuming the connection is
// valid.
func (reporter Reporter) Report(bag fmt.Stringer, params ...ReporterParams) (*logsService.RequestResult, error) {
	return reporter.ReportContext(context.Background(), bag, params...)
}

func (reporter Reporter) ReportContext(ctx context.Context, bag fmt.Stringer, params ...ReporterParams) (*logsService.RequestResult, error) {
	resolved := resolveParams(params)

	log, err := reporter.buildLog(bag, resolved)

	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	return reporter.send(ctx, log, resolved)
}

// ReportIf only connects and sends if condition returns true.
func (reporter Reporter) ReportIf(bag fmt.Stringer, condition func() bool, params ...ReporterParams) (*logsService.RequestResult, error) {
	if !condition() {
		return nil, errors.Wrap(e.New(e.ConditionError, "bag was not reported"), 0)
	}

	return reporter.Report(bag, params...)
}

// ReportWhenEnv only connects and sends when the CODECTRL_DEBUG environment
// variable is set.
func (reporter Reporter) ReportWhenEnv(bag fmt.Stringer, params ...ReporterParams) (*logsService.RequestResult, error) {
	if _, present := os.LookupEnv(DebugEnv); !present {
		return nil, errors.Wrap(e.New(e.EnvNotSetError, DebugEnv), 0)
	}

	return reporter.Report(bag, params...)
}

func (reporter Reporter) buildLog(bag fmt.Stringer, params ReporterParams) (*l.Log, error) {
	log := &l.Log{
		Uuid:        uuid.NewString(),
		CodeSnippet: map[uint32]string{},
		Message:     bag.String(),
		MessageType: reflect.TypeOf(bag).String(),
		Warnings:    []string{},
		Language:    "Go",
	}

	if empty, ok := bag.(interface{ IsEmpty() bool }); ok && empty.IsEmpty() {
		log.Warnings = append(log.Warnings, "bag is empty")
	}

	log.Stack = getStackTrace()

	if len(log.GetStack()) == 0 {
		return log, nil
	}

	last := log.GetStack()[len(log.GetStack())-1]
	log.LineNumber = last.GetLineNumber()
	log.FileName = last.GetFilePath()

	snippet, err := getCodeSnippet(last.GetFilePath(), log.LineNumber, params.surround)

	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	log.CodeSnippet = snippet

	return log, nil
}

func (reporter Reporter) send(ctx context.Context, log *l.Log, params ReporterParams) (*logsService.RequestResult, error) {
	connection, err := grpc.Dial(
		net.JoinHostPort(params.host, params.port),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)

	if err != nil {
		return nil, errors.Wrap(err, 0)
	}

	defer connection.Close()

	ctx, cancel := context.WithTimeout(ctx, params.timeout)
	defer cancel()

	client := logsService.NewLogClientClient(connection)

	result, err := client.SendLog(ctx, log)

	if err != nil {
		return nil, errors.Wrap(e.New(e.ReporterError, err.Error()), 0)
	}

	return result, nil
}
