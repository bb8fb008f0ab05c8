package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "promptbook.v1.PromptBook"

const (
	PromptBook_SignUp_FullMethodName             = "/promptbook.v1.PromptBook/SignUp"
	PromptBook_SignInWithPassword_FullMethodName = "/promptbook.v1.PromptBook/SignInWithPassword"
	PromptBook_SignInWithOAuth_FullMethodName    = "/promptbook.v1.PromptBook/SignInWithOAuth"
	PromptBook_RefreshToken_FullMethodName       = "/promptbook.v1.PromptBook/RefreshToken"
	PromptBook_SignOut_FullMethodName            = "/promptbook.v1.PromptBook/SignOut"
	PromptBook_GetUser_FullMethodName            = "/promptbook.v1.PromptBook/GetUser"
	PromptBook_SelectPrompts_FullMethodName      = "/promptbook.v1.PromptBook/SelectPrompts"
	PromptBook_InsertPrompt_FullMethodName       = "/promptbook.v1.PromptBook/InsertPrompt"
	PromptBook_UpdatePrompt_FullMethodName       = "/promptbook.v1.PromptBook/UpdatePrompt"
	PromptBook_DeletePrompt_FullMethodName       = "/promptbook.v1.PromptBook/DeletePrompt"
	PromptBook_Ping_FullMethodName               = "/promptbook.v1.PromptBook/Ping"
)

// PromptBookClient is the client API for the PromptBook service.
type PromptBookClient interface {
	SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*UserResponse, error)
	SignInWithPassword(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignInWithOAuth(ctx context.Context, in *SignInWithOAuthRequest, opts ...grpc.CallOption) (*SignInWithOAuthResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error)
	GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error)
	SelectPrompts(ctx context.Context, in *SelectPromptsRequest, opts ...grpc.CallOption) (*SelectPromptsResponse, error)
	InsertPrompt(ctx context.Context, in *InsertPromptRequest, opts ...grpc.CallOption) (*PromptResponse, error)
	UpdatePrompt(ctx context.Context, in *UpdatePromptRequest, opts ...grpc.CallOption) (*PromptResponse, error)
	DeletePrompt(ctx context.Context, in *DeletePromptRequest, opts ...grpc.CallOption) (*Empty, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type promptBookClient struct {
	cc grpc.ClientConnInterface
}

func NewPromptBookClient(cc grpc.ClientConnInterface) PromptBookClient {
	return &promptBookClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *promptBookClient) SignUp(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, PromptBook_SignUp_FullMethodName, in, opts)
}

func (c *promptBookClient) SignInWithPassword(ctx context.Context, in *CredentialsRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, PromptBook_SignInWithPassword_FullMethodName, in, opts)
}

func (c *promptBookClient) SignInWithOAuth(ctx context.Context, in *SignInWithOAuthRequest, opts ...grpc.CallOption) (*SignInWithOAuthResponse, error) {
	return invoke[SignInWithOAuthResponse](ctx, c.cc, PromptBook_SignInWithOAuth_FullMethodName, in, opts)
}

func (c *promptBookClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, PromptBook_RefreshToken_FullMethodName, in, opts)
}

func (c *promptBookClient) SignOut(ctx context.Context, in *SignOutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, PromptBook_SignOut_FullMethodName, in, opts)
}

func (c *promptBookClient) GetUser(ctx context.Context, in *GetUserRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c.cc, PromptBook_GetUser_FullMethodName, in, opts)
}

func (c *promptBookClient) SelectPrompts(ctx context.Context, in *SelectPromptsRequest, opts ...grpc.CallOption) (*SelectPromptsResponse, error) {
	return invoke[SelectPromptsResponse](ctx, c.cc, PromptBook_SelectPrompts_FullMethodName, in, opts)
}

func (c *promptBookClient) InsertPrompt(ctx context.Context, in *InsertPromptRequest, opts ...grpc.CallOption) (*PromptResponse, error) {
	return invoke[PromptResponse](ctx, c.cc, PromptBook_InsertPrompt_FullMethodName, in, opts)
}

func (c *promptBookClient) UpdatePrompt(ctx context.Context, in *UpdatePromptRequest, opts ...grpc.CallOption) (*PromptResponse, error) {
	return invoke[PromptResponse](ctx, c.cc, PromptBook_UpdatePrompt_FullMethodName, in, opts)
}

func (c *promptBookClient) DeletePrompt(ctx context.Context, in *DeletePromptRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, PromptBook_DeletePrompt_FullMethodName, in, opts)
}

func (c *promptBookClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PromptBook_Ping_FullMethodName, in, opts)
}

// PromptBookServer is the server API for the PromptBook service.
type PromptBookServer interface {
	SignUp(context.Context, *CredentialsRequest) (*UserResponse, error)
	SignInWithPassword(context.Context, *CredentialsRequest) (*SessionResponse, error)
	SignInWithOAuth(context.Context, *SignInWithOAuthRequest) (*SignInWithOAuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*SessionResponse, error)
	SignOut(context.Context, *SignOutRequest) (*Empty, error)
	GetUser(context.Context, *GetUserRequest) (*UserResponse, error)
	SelectPrompts(context.Context, *SelectPromptsRequest) (*SelectPromptsResponse, error)
	InsertPrompt(context.Context, *InsertPromptRequest) (*PromptResponse, error)
	UpdatePrompt(context.Context, *UpdatePromptRequest) (*PromptResponse, error)
	DeletePrompt(context.Context, *DeletePromptRequest) (*Empty, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedPromptBookServer answers every call with codes.Unimplemented.
// Embed it to stay forward compatible with new methods.
type UnimplementedPromptBookServer struct{}

func (UnimplementedPromptBookServer) SignUp(context.Context, *CredentialsRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignUp not implemented")
}
func (UnimplementedPromptBookServer) SignInWithPassword(context.Context, *CredentialsRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignInWithPassword not implemented")
}
func (UnimplementedPromptBookServer) SignInWithOAuth(context.Context, *SignInWithOAuthRequest) (*SignInWithOAuthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SignInWithOAuth not implemented")
}
func (UnimplementedPromptBookServer) RefreshToken(context.Context, *RefreshTokenRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedPromptBookServer) SignOut(context.Context, *SignOutRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method SignOut not implemented")
}
func (UnimplementedPromptBookServer) GetUser(context.Context, *GetUserRequest) (*UserResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetUser not implemented")
}
func (UnimplementedPromptBookServer) SelectPrompts(context.Context, *SelectPromptsRequest) (*SelectPromptsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SelectPrompts not implemented")
}
func (UnimplementedPromptBookServer) InsertPrompt(context.Context, *InsertPromptRequest) (*PromptResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method InsertPrompt not implemented")
}
func (UnimplementedPromptBookServer) UpdatePrompt(context.Context, *UpdatePromptRequest) (*PromptResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePrompt not implemented")
}
func (UnimplementedPromptBookServer) DeletePrompt(context.Context, *DeletePromptRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeletePrompt not implemented")
}
func (UnimplementedPromptBookServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterPromptBookServer(s grpc.ServiceRegistrar, srv PromptBookServer) {
	s.RegisterService(&PromptBook_ServiceDesc, srv)
}

// unaryHandler adapts a PromptBookServer method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(PromptBookServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PromptBookServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PromptBookServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PromptBook_ServiceDesc is the grpc.ServiceDesc for the PromptBook service.
var PromptBook_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PromptBookServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "SignUp", Handler: unaryHandler(PromptBook_SignUp_FullMethodName, PromptBookServer.SignUp)},
		{MethodName: "SignInWithPassword", Handler: unaryHandler(PromptBook_SignInWithPassword_FullMethodName, PromptBookServer.SignInWithPassword)},
		{MethodName: "SignInWithOAuth", Handler: unaryHandler(PromptBook_SignInWithOAuth_FullMethodName, PromptBookServer.SignInWithOAuth)},
		{MethodName: "RefreshToken", Handler: unaryHandler(PromptBook_RefreshToken_FullMethodName, PromptBookServer.RefreshToken)},
		{MethodName: "SignOut", Handler: unaryHandler(PromptBook_SignOut_FullMethodName, PromptBookServer.SignOut)},
		{MethodName: "GetUser", Handler: unaryHandler(PromptBook_GetUser_FullMethodName, PromptBookServer.GetUser)},
		{MethodName: "SelectPrompts", Handler: unaryHandler(PromptBook_SelectPrompts_FullMethodName, PromptBookServer.SelectPrompts)},
		{MethodName: "InsertPrompt", Handler: unaryHandler(PromptBook_InsertPrompt_FullMethodName, PromptBookServer.InsertPrompt)},
		{MethodName: "UpdatePrompt", Handler: unaryHandler(PromptBook_UpdatePrompt_FullMethodName, PromptBookServer.UpdatePrompt)},
		{MethodName: "DeletePrompt", Handler: unaryHandler(PromptBook_DeletePrompt_FullMethodName, PromptBookServer.DeletePrompt)},
		{MethodName: "Ping", Handler: unaryHandler(PromptBook_Ping_FullMethodName, PromptBookServer.Ping)},
	},
	Streams: []grpc.StreamDesc{},
}
