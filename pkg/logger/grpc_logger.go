package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NewGrpcUnaryServerInterceptor는 단일 요청/응답 gRPC 메서드에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		startTime := time.Now()
		resp, err := handler(ctx, req)
		logGrpcResult(logger, "gRPC 요청", info.FullMethod, err, time.Since(startTime))
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트리밍 gRPC 메서드(예: Health.Watch)에 대한 로깅 인터셉터를 생성합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		startTime := time.Now()
		wrapped := &wrappedServerStream{ServerStream: ss}

		err := handler(srv, wrapped)
		logGrpcResult(logger, "gRPC 스트림", info.FullMethod, err, time.Since(startTime),
			zap.Int("grpc.recv_count", wrapped.recvCount),
			zap.Int("grpc.send_count", wrapped.sendCount),
		)
		return err
	}
}

// logGrpcResult는 상태 코드에 따라 로그 레벨을 결정합니다.
// 클라이언트/네트워크 기인 코드는 Warn, 그 외 실패는 Error로 남깁니다.
func logGrpcResult(logger *zap.Logger, kind, fullMethod string, err error, duration time.Duration, extra ...zap.Field) {
	statusCode := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			statusCode = st.Code()
		} else {
			statusCode = codes.Unknown
		}
	}

	fields := []zap.Field{
		zap.String("grpc.service", path.Dir(fullMethod)[1:]),
		zap.String("grpc.method", path.Base(fullMethod)),
		zap.String("grpc.code", statusCode.String()),
		zap.Duration("grpc.duration", duration),
	}
	fields = append(fields, extra...)

	switch statusCode {
	case codes.OK:
		logger.Debug(kind+" 완료", fields...)
	case codes.Canceled, codes.DeadlineExceeded, codes.ResourceExhausted,
		codes.Aborted, codes.Unavailable, codes.NotFound:
		logger.Warn(kind+" 실패", append(fields, zap.Error(err))...)
	default:
		logger.Error(kind+" 오류", append(fields, zap.Error(err))...)
	}
}

// wrappedServerStream은 ServerStream을 래핑하여 메시지 송수신 횟수를 추적합니다.
type wrappedServerStream struct {
	grpc.ServerStream
	recvCount int
	sendCount int
}

func (w *wrappedServerStream) RecvMsg(m interface{}) error {
	err := w.ServerStream.RecvMsg(m)
	if err == nil {
		w.recvCount++
	}
	return err
}

func (w *wrappedServerStream) SendMsg(m interface{}) error {
	err := w.ServerStream.SendMsg(m)
	if err == nil {
		w.sendCount++
	}
	return err
}
