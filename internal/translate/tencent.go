// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"context"
	"errors"
	"fmt"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	tcerrors "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	tmt "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/tmt/v20180321"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	// DefaultRegion and DefaultEndpoint locate the public TMT service.
	DefaultRegion   = "ap-guangzhou"
	DefaultEndpoint = "tmt.tencentcloudapi.com"
)

// TencentTranslator calls Tencent Machine Translation TextTranslate.
type TencentTranslator struct {
	client    *tmt.Client
	projectID int64
}

// TencentOption adjusts the client profile before the client is built.
type TencentOption func(*profile.ClientProfile)

// WithScheme sets the URL scheme ("HTTP" or "HTTPS") used to reach the endpoint.
func WithScheme(scheme string) TencentOption {
	return func(p *profile.ClientProfile) {
		p.HttpProfile.Scheme = scheme
	}
}

// NewTencent builds a translator from cfg. Without credentials the
// translator is still returned; every call then fails with
// ErrMissingCredentials and no request is sent.
func NewTencent(cfg types.TranslationConfig, opts ...TencentOption) (*TencentTranslator, error) {
	t := &TencentTranslator{projectID: cfg.ProjectID}
	if !cfg.HasCredentials() {
		return t, nil
	}

	region := cfg.Region
	if region == "" {
		region = DefaultRegion
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = endpoint
	for _, opt := range opts {
		opt(cpf)
	}

	client, err := tmt.NewClient(common.NewCredential(cfg.SecretID, cfg.SecretKey), region, cpf)
	if err != nil {
		return nil, fmt.Errorf("creating TMT client: %w", err)
	}
	t.client = client
	return t, nil
}

// Translate sends one TextTranslate request. Errors reported by the
// service are returned as *ServiceError.
func (t *TencentTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if t.client == nil {
		return "", ErrMissingCredentials
	}

	req := tmt.NewTextTranslateRequest()
	req.SourceText = common.StringPtr(text)
	req.Source = common.StringPtr(source)
	req.Target = common.StringPtr(target)
	req.ProjectId = common.Int64Ptr(t.projectID)

	resp, err := t.client.TextTranslateWithContext(ctx, req)
	if err != nil {
		var sdkErr *tcerrors.TencentCloudSDKError
		if errors.As(err, &sdkErr) {
			return "", &ServiceError{
				Code:      sdkErr.GetCode(),
				Message:   sdkErr.GetMessage(),
				RequestID: sdkErr.GetRequestId(),
			}
		}
		return "", fmt.Errorf("TMT request: %w", err)
	}
	if resp.Response == nil || resp.Response.TargetText == nil {
		return "", fmt.Errorf("TMT response has no target text")
	}
	return *resp.Response.TargetText, nil
}
