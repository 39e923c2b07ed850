package render

import "github.com/toba/protoc-gen-rescript/internal/ir"

// grpcStatusCodes is the standard sixteen gRPC status codes, rendered as
// one shared enum per service's server surface.
var grpcStatusCodes = []string{
	"Ok", "Cancelled", "Unknown", "InvalidArgument", "DeadlineExceeded",
	"NotFound", "AlreadyExists", "PermissionDenied", "ResourceExhausted",
	"FailedPrecondition", "Aborted", "OutOfRange", "Unimplemented",
	"Internal", "Unavailable", "DataLoss", "Unauthenticated",
}

// Service renders the client and server surfaces: a client
// config/call/callStream trio plus one function per method, and a
// server handler-table dispatcher keyed on each method's streaming
// mode.
func Service(p *Printer, s *ir.ServiceInfo) {
	p.P("module ", s.Name, " = {")
	p.In()

	renderGrpcStatus(p)
	p.P()
	renderClient(p, s)
	p.P()
	renderServer(p, s)

	p.Out()
	p.P("}")
}

func renderGrpcStatus(p *Printer) {
	p.P("type grpcStatus =")
	p.In()
	for _, c := range grpcStatusCodes {
		p.P("| ", c)
	}
	p.Out()
}

func renderClient(p *Printer, s *ir.ServiceInfo) {
	p.P("module Client = {")
	p.In()

	p.P("type config = {")
	p.In()
	p.P("baseUrl: string,")
	p.P("headers: Js.Dict.t<string>,")
	p.Out()
	p.P("}")
	p.P()
	p.P(`let defaultConfig = (~baseUrl: string): config => {baseUrl, headers: Js.Dict.empty()}`)
	p.P()

	p.P("type error =")
	p.In()
	p.P("| NetworkError(string)")
	p.P("| GrpcError(int, string)")
	p.P("| DecodeError(string)")
	p.Out()
	p.P()

	p.P("// streamHandler is the three-callback surface callStream drives:")
	p.P("// onMessage fires per NDJSON line, onError at most once on a")
	p.P("// transport or decode failure, onComplete once the response ends.")
	p.P("type streamHandler<'a> = {")
	p.In()
	p.P("onMessage: 'a => unit,")
	p.P("onError: error => unit,")
	p.P("onComplete: unit => unit,")
	p.Out()
	p.P("}")
	p.P()

	p.P("// streamCancel wraps the mutable cancellation flag that suppresses")
	p.P("// further onMessage/onError/onComplete delivery once set; it is the")
	p.P("// only concurrent surface this client exposes.")
	p.P("type streamCancel = {")
	p.In()
	p.P("cancel: unit => unit,")
	p.Out()
	p.P("}")
	p.P()

	p.P("let call = (config: config, path: string, body: Js.Json.t): Promise.t<result<Js.Json.t, error>> =>")
	p.In()
	p.P("Transport_.unary(config.baseUrl, config.headers, path, body)")
	p.Out()
	p.P()

	p.P("let callStream = (config: config, path: string, body: Js.Json.t, handler: streamHandler<Js.Json.t>): streamCancel =>")
	p.In()
	p.P("Transport_.serverStream(config.baseUrl, config.headers, path, body, handler)")
	p.Out()
	p.P()

	for _, m := range s.Methods {
		renderClientMethod(p, s.Name, m)
		p.P()
	}

	p.Out()
	p.P("}")
}

// renderClientMethod picks one of four shapes keyed on
// (ClientStreaming, ServerStreaming), matching the service template's
// table: a plain unary call returns a Promise, any server-streaming
// response takes a three-callback handler and returns a streamCancel,
// and client-streaming methods additionally take an array of requests
// rather than one (the target has no writable request stream primitive,
// so a batched array is the closest honest shape).
func renderClientMethod(p *Printer, serviceName string, m *ir.MethodInfo) {
	path := quote("/" + serviceName + "/" + m.ProtoName)
	switch {
	case !m.ClientStreaming && !m.ServerStreaming:
		p.P("let ", m.Name, " = (config: config, req: ", m.InputType, "): Promise.t<result<", m.OutputType, ", error>> =>")
		p.In()
		p.P("call(config, ", path, ", ", moduleOf(m.InputType), ".toJson(req))->Promise.map(res =>")
		p.In()
		p.P("switch res {")
		p.P("| Ok(json) =>")
		p.In()
		p.P("switch ", moduleOf(m.OutputType), ".fromJson(json) {")
		p.P("| Some(v) => Ok(v)")
		p.P("| None => Error(DecodeError(\"decode failed\"))")
		p.P("}")
		p.Out()
		p.P("| Error(e) => Error(e)")
		p.P("})")
		p.Out()
		p.Out()
	case !m.ClientStreaming && m.ServerStreaming:
		p.P("let ", m.Name, " = (config: config, req: ", m.InputType, ", handler: streamHandler<", m.OutputType, ">): streamCancel =>")
		p.In()
		renderStreamHandlerForward(p, m.OutputType)
		p.P("callStream(config, ", path, ", ", moduleOf(m.InputType), ".toJson(req), jsonHandler)")
		p.Out()
	case m.ClientStreaming && !m.ServerStreaming:
		p.P("let ", m.Name, " = (config: config, reqs: array<", m.InputType, ">): Promise.t<result<", m.OutputType, ", error>> =>")
		p.In()
		p.P("call(config, ", path, ", Js.Json.array(Belt.Array.map(reqs, ", moduleOf(m.InputType), ".toJson)))->Promise.map(res =>")
		p.In()
		p.P("switch res {")
		p.P("| Ok(json) =>")
		p.In()
		p.P("switch ", moduleOf(m.OutputType), ".fromJson(json) {")
		p.P("| Some(v) => Ok(v)")
		p.P("| None => Error(DecodeError(\"decode failed\"))")
		p.P("}")
		p.Out()
		p.P("| Error(e) => Error(e)")
		p.P("})")
		p.Out()
		p.Out()
	default:
		p.P("let ", m.Name, " = (config: config, reqs: array<", m.InputType, ">, handler: streamHandler<", m.OutputType, ">): streamCancel =>")
		p.In()
		renderStreamHandlerForward(p, m.OutputType)
		p.P("callStream(config, ", path, ", Js.Json.array(Belt.Array.map(reqs, ", moduleOf(m.InputType), ".toJson)), jsonHandler)")
		p.Out()
	}
}

// renderStreamHandlerForward builds the Js.Json.t-typed handler that
// callStream drives, decoding each raw message through outputType's own
// fromJson before forwarding to the caller's typed handler — a decode
// failure is reported through onError rather than silently dropped, and
// onComplete/onError otherwise pass straight through.
func renderStreamHandlerForward(p *Printer, outputType string) {
	p.P("let jsonHandler: streamHandler<Js.Json.t> = {")
	p.In()
	p.P("onMessage: json => switch ", moduleOf(outputType), ".fromJson(json) {")
	p.In()
	p.P("| Some(v) => handler.onMessage(v)")
	p.P("| None => handler.onError(DecodeError(\"decode failed\"))")
	p.Out()
	p.P("},")
	p.P("onError: handler.onError,")
	p.P("onComplete: handler.onComplete,")
	p.Out()
	p.P("}")
}

func renderServer(p *Printer, s *ir.ServiceInfo) {
	p.P("module Server = {")
	p.In()

	p.P("type context = {")
	p.In()
	p.P("headers: Js.Dict.t<string>,")
	p.Out()
	p.P("}")
	p.P()

	p.P("type serverError = {")
	p.In()
	p.P("status: grpcStatus,")
	p.P("message: string,")
	p.Out()
	p.P("}")
	p.P()

	p.P("type streamWriter<'a> = {")
	p.In()
	p.P(`write: 'a => unit,`)
	p.P("close: unit => unit,")
	p.Out()
	p.P("}")
	p.P()

	for _, m := range s.Methods {
		p.P("type ", handlerTypeName(m.Name), " = ", handlerSignature(m))
	}
	p.P()

	p.P("type service = {")
	p.In()
	for _, m := range s.Methods {
		p.P(m.Name, ": ", handlerTypeName(m.Name), ",")
	}
	p.Out()
	p.P("}")
	p.P()

	p.P("let isStreamingMethod = (methodName: string): bool =>")
	p.P("  switch methodName {")
	p.In()
	for _, m := range s.Methods {
		if m.ServerStreaming {
			p.P("| ", quote(m.ProtoName), " => true")
		}
	}
	p.P("| _ => false")
	p.Out()
	p.P("  }")
	p.P()

	p.P("let handleRequest = (svc: service, methodName: string, ctx: context, body: Js.Json.t): Promise.t<result<Js.Json.t, serverError>> =>")
	p.P("  switch methodName {")
	p.In()
	for _, m := range s.Methods {
		if m.ServerStreaming {
			continue
		}
		p.P("| ", quote(m.ProtoName), " =>")
		p.In()
		p.P("switch ", moduleOf(m.InputType), ".fromJson(body) {")
		p.P("| None => Promise.resolve(Error({status: InvalidArgument, message: \"decode failed\"}))")
		p.P("| Some(req) => svc.", m.Name, "(ctx, req)->Promise.map(res =>")
		p.In()
		p.P("switch res {")
		p.P("| Ok(v) => Ok(", moduleOf(m.OutputType), ".toJson(v))")
		p.P("| Error(e) => Error(e)")
		p.P("})")
		p.Out()
		p.P("}")
		p.Out()
	}
	p.P(`| _ => Promise.resolve(Error({status: Unimplemented, message: "unknown method"}))`)
	p.Out()
	p.P("  }")
	p.P()

	p.P("let handleStreamingRequest = (svc: service, methodName: string, ctx: context, body: Js.Json.t, writer: streamWriter<Js.Json.t>): Promise.t<option<serverError>> =>")
	p.P("  switch methodName {")
	p.In()
	for _, m := range s.Methods {
		if !m.ServerStreaming {
			continue
		}
		p.P("| ", quote(m.ProtoName), " =>")
		p.In()
		p.P("switch ", moduleOf(m.InputType), ".fromJson(body) {")
		p.P(`| None => Promise.resolve(Some({status: InvalidArgument, message: "decode failed"}))`)
		p.P("| Some(req) =>")
		p.In()
		p.P("svc.", m.Name, "(ctx, req, {")
		p.In()
		p.P("write: v => writer.write(", moduleOf(m.OutputType), ".toJson(v)),")
		p.P("close: writer.close,")
		p.Out()
		p.P("})")
		p.Out()
		p.P("}")
		p.Out()
	}
	p.P(`| _ => Promise.resolve(Some({status: Unimplemented, message: "unknown method"}))`)
	p.Out()
	p.P("  }")

	p.Out()
	p.P("}")
}

func handlerTypeName(methodName string) string {
	return methodName + "Handler"
}

// handlerSignature mirrors renderClientMethod's four-row table on the
// server side: a server-streaming handler takes a streamWriter instead
// of returning one value, and any client-streaming handler receives an
// array of decoded requests.
func handlerSignature(m *ir.MethodInfo) string {
	switch {
	case !m.ClientStreaming && !m.ServerStreaming:
		return "(context, " + m.InputType + ") => Promise.t<result<" + m.OutputType + ", serverError>>"
	case !m.ClientStreaming && m.ServerStreaming:
		return "(context, " + m.InputType + ", streamWriter<" + m.OutputType + ">) => Promise.t<option<serverError>>"
	case m.ClientStreaming && !m.ServerStreaming:
		return "(context, array<" + m.InputType + ">) => Promise.t<result<" + m.OutputType + ", serverError>>"
	default:
		return "(context, array<" + m.InputType + ">, streamWriter<" + m.OutputType + ">) => Promise.t<option<serverError>>"
	}
}
