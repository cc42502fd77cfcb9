package assist

import "context"

// LaunchActiveForTest は launchActive をテストから呼べるようにエクスポートする。
func (s *Service) LaunchActiveForTest(ctx context.Context) error {
	return s.launchActive(ctx)
}

// UserMessageForTest は userMessage をテストから呼べるようにエクスポートする。
func UserMessageForTest(err error) string {
	return userMessage(err)
}
