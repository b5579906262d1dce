package controller

import (
	"maps"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

// SynthesizeWorkload builds the desired deployment for res.
//
// The resource template, when present, seeds the pod template and its first
// container seeds the single workload container. Kind defaults fill whatever
// the template leaves empty. The app label is forced onto the deployment,
// its selector and its pod template so the selector always matches its pods.
// Owner references are attached by the caller.
func SynthesizeWorkload(kind Kind, res Resource) *appsv1.Deployment {
	labels := workloadLabels(res)

	var podTemplate corev1.PodTemplateSpec
	if res.Template != nil {
		podTemplate = *res.Template.DeepCopy()
	}

	podTemplate.Labels = mergeLabels(podTemplate.Labels, labels)

	var container corev1.Container
	if len(podTemplate.Spec.Containers) > 0 {
		container = podTemplate.Spec.Containers[0]
	}

	podTemplate.Spec.Containers = []corev1.Container{
		workloadContainer(kind, res, container),
	}

	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{
			Name:      res.Name,
			Namespace: res.Namespace,
			Labels:    maps.Clone(labels),
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(workloadReplicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: maps.Clone(labels),
			},
			Template: podTemplate,
		},
	}
}

func workloadLabels(res Resource) map[string]string {
	return map[string]string{AppLabelKey: res.Name}
}

func mergeLabels(base, forced map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(forced))
	maps.Copy(out, base)
	maps.Copy(out, forced)

	return out
}

func workloadContainer(kind Kind, res Resource, c corev1.Container) corev1.Container {
	if c.Name == "" {
		c.Name = res.Name
	}

	if c.Image == "" {
		c.Image = kind.DefaultImage
	}

	if c.ImagePullPolicy == "" {
		c.ImagePullPolicy = corev1.PullIfNotPresent
	}

	if len(c.Command) == 0 {
		c.Command = []string{kind.Command}
	}

	if len(c.Args) == 0 {
		c.Args = []string{res.Name}
	}

	c.Env = setEnv(c.Env, kind.EnvPrefix+"_NAME", res.Name)
	c.Env = setEnv(c.Env, kind.EnvPrefix+"_NAMESPACE", res.Namespace)

	return c
}

// setEnv replaces the variable if the template already declares it.
func setEnv(env []corev1.EnvVar, name, value string) []corev1.EnvVar {
	for i := range env {
		if env[i].Name == name {
			env[i] = corev1.EnvVar{Name: name, Value: value}

			return env
		}
	}

	return append(env, corev1.EnvVar{Name: name, Value: value})
}
