package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sandeep010-hub/promptcraft-fusion/config"
	"github.com/aliyun/alibaba-cloud-sdk-go/services/sts"
)

var ErrSTSNotConfigured = errors.New("OSS STS credentials not configured")

// STSCredentials are temporary credentials a browser can use to put an
// output straight into the bucket.
type STSCredentials struct {
	AccessKeyId     string `json:"accessKeyId"`
	AccessKeySecret string `json:"accessKeySecret"`
	SecurityToken   string `json:"securityToken"`
	Expiration      string `json:"expiration"`
	Region          string `json:"region"`
	Bucket          string `json:"bucket"`
}

// stsRegion strips the "oss-" prefix, since STS wants "cn-beijing" where OSS
// says "oss-cn-beijing".
func stsRegion(region string) string {
	if after, ok := strings.CutPrefix(region, "oss-"); ok {
		return after
	}
	return region
}

func GetOSSTSToken(cfg *config.Config) (*STSCredentials, error) {
	if cfg.OSSRegion == "" || cfg.OSSAccessKeyID == "" || cfg.OSSAccessKeySecret == "" || cfg.OSSRoleArn == "" {
		return nil, ErrSTSNotConfigured
	}

	client, err := sts.NewClientWithAccessKey(stsRegion(cfg.OSSRegion), cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create STS client: %w", err)
	}

	request := sts.CreateAssumeRoleRequest()
	request.Scheme = "https"
	request.RoleArn = cfg.OSSRoleArn
	request.RoleSessionName = "promptcraft-session"
	request.DurationSeconds = "3600"

	response, err := client.AssumeRole(request)
	if err != nil {
		return nil, fmt.Errorf("failed to assume role: %w", err)
	}

	return &STSCredentials{
		AccessKeyId:     response.Credentials.AccessKeyId,
		AccessKeySecret: response.Credentials.AccessKeySecret,
		SecurityToken:   response.Credentials.SecurityToken,
		Expiration:      response.Credentials.Expiration,
		Region:          cfg.OSSRegion,
		Bucket:          ossBucketName(cfg.StorageBucket),
	}, nil
}
