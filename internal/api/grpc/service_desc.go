package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const servicePrefix = "recruiting.v1."

// unary builds a method descriptor for a typed handler. Requests are decoded
// by the registered codec and handler errors are translated with toStatus.
func unary[Req any, Resp any](service, method string, h func(context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + servicePrefix + service + "/" + method
	call := func(ctx context.Context, req any) (any, error) {
		resp, err := h(ctx, req.(*Req))
		if err != nil {
			return nil, toStatus(err)
		}
		return resp, nil
	}
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, call)
		},
	}
}

func serviceDesc(service string, methods ...grpc.MethodDesc) *grpc.ServiceDesc {
	return &grpc.ServiceDesc{
		ServiceName: servicePrefix + service,
		HandlerType: (*any)(nil),
		Methods:     methods,
		Streams:     []grpc.StreamDesc{},
		Metadata:    "recruiting/v1/recruiting.json",
	}
}

// Handlers groups every service handler the server exposes.
type Handlers struct {
	Auth         *AuthHandler
	Organization *OrganizationHandler
	Cycle        *CycleHandler
	Catalog      *CatalogHandler
	Application  *ApplicationHandler
	Review       *ReviewHandler
	Interview    *InterviewHandler
	Resume       *ResumeHandler
	Notification *NotificationHandler
}

// Register attaches each non-nil handler to the server.
func (h Handlers) Register(s grpc.ServiceRegistrar) {
	if h.Auth != nil {
		s.RegisterService(h.Auth.desc(), h.Auth)
	}
	if h.Organization != nil {
		s.RegisterService(h.Organization.desc(), h.Organization)
	}
	if h.Cycle != nil {
		s.RegisterService(h.Cycle.desc(), h.Cycle)
	}
	if h.Catalog != nil {
		s.RegisterService(h.Catalog.desc(), h.Catalog)
	}
	if h.Application != nil {
		s.RegisterService(h.Application.desc(), h.Application)
	}
	if h.Review != nil {
		s.RegisterService(h.Review.desc(), h.Review)
	}
	if h.Interview != nil {
		s.RegisterService(h.Interview.desc(), h.Interview)
	}
	if h.Resume != nil {
		s.RegisterService(h.Resume.desc(), h.Resume)
	}
	if h.Notification != nil {
		s.RegisterService(h.Notification.desc(), h.Notification)
	}
}
